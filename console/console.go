// Package console drives a data.Queue from line-oriented commands, for
// interactive use and scripted tests.
package console

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"

	"github.com/ttn-nguyen42/natq/data"
	"github.com/ttn-nguyen42/natq/harness"
	"github.com/ttn-nguyen42/natq/util"
)

var (
	ErrCommandsFailed error = fmt.Errorf("commands failed")
	ErrNoQueue        error = fmt.Errorf("no queue")
)

type Console struct {
	q       *data.Queue
	tracker *harness.Tracker
	out     io.Writer
	options *Options
	rand    *rand.Rand
	failed  int
	quit    bool
}

func New(opts ...Option) *Console {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.Tracker == nil {
		o.Tracker = harness.NewTracker(harness.WithSeed(o.Seed))
	}
	return &Console{
		tracker: o.Tracker,
		out:     o.Output,
		options: o,
		rand:    util.NewSeededRand(o.Seed),
	}
}

// Queue returns the queue the console currently operates on, or nil.
func (c *Console) Queue() *data.Queue {
	return c.q
}

func (c *Console) Failed() int {
	return c.failed
}

type readResult struct {
	cmd Command
	err error
}

// Run executes commands read from r until quit, end of input or ctx is done.
// The queue is released and checked for leaks before returning.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan readResult)
	done := make(chan struct{})
	defer close(done)

	go func() {
		sc := newScanner(r)
		for {
			cmd, err := sc.next()
			select {
			case lines <- readResult{cmd: cmd, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for !c.quit {
		var res readResult
		select {
		case <-ctx.Done():
			c.finish()
			return ctx.Err()
		case res = <-lines:
		}

		if res.err != nil {
			if !util.IsEndOfInput(res.err) {
				if util.IsLineTooLong(res.err) {
					res.err = ErrLineTooLong
				}
				c.fail(res.cmd, res.err)
			}
			break
		}
		c.run(res.cmd)
	}

	c.finish()
	if c.failed > 0 {
		return fmt.Errorf("%w: %d", ErrCommandsFailed, c.failed)
	}
	return nil
}

// Exec runs a single command line.
func (c *Console) Exec(line string) error {
	cmd := ParseCommand(line)
	if cmd.Empty() {
		return nil
	}
	return c.run(cmd)
}

func (c *Console) run(cmd Command) error {
	if c.options.Echo {
		c.printf("cmd> %s\n", cmd.String())
	}
	hdlr, err := selectHandler(&cmd)
	if err == nil {
		err = hdlr(c, &cmd)
	}
	if err != nil {
		c.fail(cmd, err)
	}
	return err
}

func (c *Console) fail(cmd Command, err error) {
	c.failed += 1
	c.printf("ERROR: %v\n", err)
	log.Printf("command failed, line=%d cmd=%q: %v", cmd.Line, cmd.Cmd, err)
}

// finish frees the current queue and reports leaked storage as a failure.
func (c *Console) finish() {
	c.freeQueue()
	if err := c.tracker.Check(); err != nil {
		c.fail(Command{Cmd: "quit"}, err)
	}
}

func (c *Console) freeQueue() {
	c.q.Free()
	c.q = nil
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) show() {
	if c.q == nil {
		c.printf("q = NULL\n")
		return
	}
	values := c.q.Values()
	buf := strings.Builder{}
	buf.WriteString("q = [")
	for i, v := range values {
		if i >= c.options.ShowLimit {
			buf.WriteString(" ...")
			break
		}
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(v)
	}
	buf.WriteString("]\n")
	c.printf("%s", buf.String())
}
