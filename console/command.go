package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var (
	ErrLineTooLong error = fmt.Errorf("command line exceeded 1MB")
)

const (
	MB          = 1024 * 1024
	maxLineSize = 1 * MB
)

type Command struct {
	Cmd  string
	Args []string
	Line int // Position of the command in its input stream
}

// ParseCommand splits one input line into a command and its arguments.
// Blank lines and lines starting with '#' yield an empty command.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if len(line) == 0 || strings.HasPrefix(line, "#") {
		return Command{}
	}
	parts := strings.Fields(line)
	return Command{
		Cmd:  strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

func (c *Command) Empty() bool {
	return len(c.Cmd) == 0
}

func (c *Command) String() string {
	return strings.Join(append([]string{c.Cmd}, c.Args...), " ")
}

type scanner struct {
	sc   *bufio.Scanner
	line int
}

func newScanner(r io.Reader) *scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &scanner{sc: sc}
}

// next returns the next non-empty command, or io.EOF once input is exhausted.
func (s *scanner) next() (Command, error) {
	for s.sc.Scan() {
		s.line += 1
		cmd := ParseCommand(s.sc.Text())
		if cmd.Empty() {
			continue
		}
		cmd.Line = s.line
		return cmd, nil
	}
	if err := s.sc.Err(); err != nil {
		return Command{}, err
	}
	return Command{}, io.EOF
}
