package console

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/ttn-nguyen42/natq/data"
	"github.com/ttn-nguyen42/natq/util"
)

var (
	ErrInvalidArguments error = fmt.Errorf("invalid arguments")
	ErrUnknownCommand   error = fmt.Errorf("unknown command")
	ErrMismatch         error = fmt.Errorf("removed value mismatch")
)

// Values given as RAND are replaced by random strings up to this length.
const (
	randMarker     = "RAND"
	maxRandLength  = 10
	defaultRepeats = 1
)

type Handler func(c *Console, cmd *Command) error

type entry struct {
	handler Handler
	usage   string
}

var hmap map[string]entry

func init() {
	hmap = map[string]entry{
		"new":     {handleNew, "new                 | Create new queue"},
		"free":    {handleFree, "free                | Delete queue"},
		"ih":      {handleInsertHead, "ih str [n]          | Insert string str at head of queue n times (str=RAND for random)"},
		"it":      {handleInsertTail, "it str [n]          | Insert string str at tail of queue n times (str=RAND for random)"},
		"rh":      {handleRemoveHead, "rh [str]            | Remove from head of queue, optionally compare to expected value str"},
		"rhq":     {handleRemoveHeadQuiet, "rhq                 | Remove from head of queue without reporting value"},
		"reverse": {handleReverse, "reverse             | Reverse queue"},
		"sort":    {handleSort, "sort                | Sort queue in natural order"},
		"size":    {handleSize, "size [n]            | Compute queue size n times"},
		"show":    {handleShow, "show                | Show queue contents"},
		"stats":   {handleStats, "stats               | Show allocator statistics"},
		"option":  {handleOption, "option name value   | Set option: fail, length, show, echo"},
		"help":    {handleHelp, "help                | Show documentation"},
		"quit":    {handleQuit, "quit                | Exit program"},
	}
}

func selectHandler(cmd *Command) (Handler, error) {
	e, found := hmap[cmd.Cmd]
	if !found {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownCommand, cmd.Cmd)
	}
	return e.handler, nil
}

func parseCount(args []string, at int) (int, error) {
	if len(args) <= at {
		return defaultRepeats, nil
	}
	n, err := strconv.Atoi(args[at])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid count '%s'", ErrInvalidArguments, args[at])
	}
	return n, nil
}

func handleNew(c *Console, cmd *Command) error {
	c.freeQueue()
	q, err := data.NewQueue(data.WithAllocator(c.tracker))
	if err != nil {
		c.show()
		return err
	}
	c.q = q
	c.show()
	return nil
}

func handleFree(c *Console, cmd *Command) error {
	c.freeQueue()
	c.show()
	return c.tracker.Check()
}

func handleInsertHead(c *Console, cmd *Command) error {
	return handleInsert(c, cmd, c.q.InsertHead)
}

func handleInsertTail(c *Console, cmd *Command) error {
	return handleInsert(c, cmd, c.q.InsertTail)
}

func handleInsert(c *Console, cmd *Command, insert func(string) error) error {
	if len(cmd.Args) < 1 {
		return fmt.Errorf("%w: missing value", ErrInvalidArguments)
	}
	n, err := parseCount(cmd.Args, 1)
	if err != nil {
		return err
	}
	defer c.show()
	for i := 0; i < n; i += 1 {
		value := cmd.Args[0]
		if value == randMarker {
			value = util.RandomString(c.rand, 1+c.rand.Intn(maxRandLength))
		}
		if err := insert(value); err != nil {
			return fmt.Errorf("%s failed after %d of %d insert(s): %w", cmd.Cmd, i, n, err)
		}
	}
	return nil
}

func handleRemoveHead(c *Console, cmd *Command) error {
	buf := make([]byte, c.options.StringLength)
	if err := c.q.RemoveHead(buf); err != nil {
		c.show()
		return err
	}
	removed := cString(buf)
	c.printf("Removed %s from queue\n", removed)
	defer c.show()
	if len(cmd.Args) > 0 && cmd.Args[0] != removed {
		return fmt.Errorf("%w: removed %q, expected %q", ErrMismatch, removed, cmd.Args[0])
	}
	return nil
}

func handleRemoveHeadQuiet(c *Console, cmd *Command) error {
	defer c.show()
	return c.q.RemoveHead(nil)
}

func handleReverse(c *Console, cmd *Command) error {
	if c.q == nil {
		return ErrNoQueue
	}
	c.q.Reverse()
	c.show()
	return nil
}

func handleSort(c *Console, cmd *Command) error {
	if c.q == nil {
		return ErrNoQueue
	}
	c.q.Sort()
	c.show()
	return nil
}

func handleSize(c *Console, cmd *Command) error {
	n, err := parseCount(cmd.Args, 0)
	if err != nil {
		return err
	}
	if c.q == nil {
		return ErrNoQueue
	}
	size := 0
	for i := 0; i < n; i += 1 {
		size = c.q.Size()
	}
	c.printf("Queue size = %d\n", size)
	return nil
}

func handleShow(c *Console, cmd *Command) error {
	c.show()
	return nil
}

func handleStats(c *Console, cmd *Command) error {
	c.printf("%s", c.tracker.Stats().String())
	return nil
}

func handleOption(c *Console, cmd *Command) error {
	if len(cmd.Args) != 2 {
		return fmt.Errorf("%w: usage: option name value", ErrInvalidArguments)
	}
	name := cmd.Args[0]
	val, err := strconv.Atoi(cmd.Args[1])
	if err != nil {
		return fmt.Errorf("%w: invalid value for '%s'", ErrInvalidArguments, name)
	}
	switch name {
	case "fail":
		c.tracker.SetFailRate(val)
	case "length":
		if val <= 0 {
			return fmt.Errorf("%w: length must be positive", ErrInvalidArguments)
		}
		c.options.StringLength = val
	case "show":
		if val <= 0 {
			return fmt.Errorf("%w: show limit must be positive", ErrInvalidArguments)
		}
		c.options.ShowLimit = val
	case "echo":
		c.options.Echo = val != 0
	default:
		return fmt.Errorf("%w: unknown option '%s'", ErrInvalidArguments, name)
	}
	return nil
}

func handleHelp(c *Console, cmd *Command) error {
	names := make([]string, 0, len(hmap))
	for name := range hmap {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		c.printf("  %s\n", hmap[name].usage)
	}
	return nil
}

func handleQuit(c *Console, cmd *Command) error {
	c.quit = true
	return nil
}

func cString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
