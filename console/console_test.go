package console_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ttn-nguyen42/natq/console"
	"github.com/ttn-nguyen42/natq/data"
	"github.com/ttn-nguyen42/natq/harness"
)

func newConsole(out *bytes.Buffer, opts ...console.Option) *console.Console {
	opts = append([]console.Option{console.WithOutput(out), console.WithSeed(1)}, opts...)
	return console.New(opts...)
}

func TestRun_Session(t *testing.T) {
	script := strings.Join([]string{
		"# build a queue",
		"new",
		"it b",
		"it a",
		"",
		"ih c",
		"show",
		"sort",
		"rh a",
		"reverse",
		"size",
		"free",
		"quit",
		"it never",
	}, "\n")

	var out bytes.Buffer
	c := newConsole(&out)
	if err := c.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run() error = %v\noutput:\n%s", err, out.String())
	}

	expected := strings.Join([]string{
		"q = []",
		"q = [b]",
		"q = [b a]",
		"q = [c b a]",
		"q = [c b a]",
		"q = [a b c]",
		"Removed a from queue",
		"q = [b c]",
		"q = [c b]",
		"Queue size = 2",
		"q = NULL",
	}, "\n") + "\n"
	if out.String() != expected {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out.String(), expected)
	}
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
		wantOut string
	}{
		{
			name:    "remove from empty queue",
			script:  "new\nrh\n",
			wantErr: data.ErrEmptyQueue,
			wantOut: "ERROR: queue is empty",
		},
		{
			name:    "insert without queue",
			script:  "it a\n",
			wantErr: data.ErrInvalidQueue,
			wantOut: "q = NULL",
		},
		{
			name:    "expected value mismatch",
			script:  "new\nit a\nrh b\n",
			wantErr: console.ErrMismatch,
			wantOut: "Removed a from queue",
		},
		{
			name:    "unknown command",
			script:  "push a\n",
			wantErr: console.ErrUnknownCommand,
			wantOut: "ERROR: unknown command: 'push'",
		},
		{
			name:    "bad count",
			script:  "new\nit a x\n",
			wantErr: console.ErrInvalidArguments,
		},
		{
			name:    "allocation failure",
			script:  "option fail 100\nnew\n",
			wantErr: data.ErrAllocation,
			wantOut: "q = NULL",
		},
		{
			name:    "sort without queue",
			script:  "sort\n",
			wantErr: console.ErrNoQueue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := newConsole(&out)

			err := c.Run(context.Background(), strings.NewReader(tt.script))
			if !errors.Is(err, console.ErrCommandsFailed) {
				t.Fatalf("expected ErrCommandsFailed, got %v", err)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("expected %q in output:\n%s", tt.wantOut, out.String())
			}

			// replay the script to get at the last error
			lines := strings.Split(strings.TrimSpace(tt.script), "\n")
			replay := newConsole(&bytes.Buffer{})
			var last error
			for _, line := range lines {
				last = replay.Exec(line)
			}
			if !errors.Is(last, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, last)
			}
		})
	}
}

func TestExec_Options(t *testing.T) {
	t.Run("length truncates removed value", func(t *testing.T) {
		var out bytes.Buffer
		c := newConsole(&out)
		for _, line := range []string{"new", "it abcdef", "option length 4", "rh"} {
			if err := c.Exec(line); err != nil {
				t.Fatalf("Exec(%q) error = %v", line, err)
			}
		}
		if !strings.Contains(out.String(), "Removed abc from queue") {
			t.Errorf("expected truncated value in output:\n%s", out.String())
		}
	})

	t.Run("show limit", func(t *testing.T) {
		var out bytes.Buffer
		c := newConsole(&out, console.WithShowLimit(2))
		for _, line := range []string{"new", "it x 5"} {
			if err := c.Exec(line); err != nil {
				t.Fatalf("Exec(%q) error = %v", line, err)
			}
		}
		if !strings.HasSuffix(out.String(), "q = [x x ...]\n") {
			t.Errorf("unexpected output:\n%s", out.String())
		}
	})

	t.Run("echo", func(t *testing.T) {
		var out bytes.Buffer
		c := newConsole(&out)
		if err := c.Exec("option echo 1"); err != nil {
			t.Fatalf("Exec() error = %v", err)
		}
		if err := c.Exec("new"); err != nil {
			t.Fatalf("Exec() error = %v", err)
		}
		if !strings.Contains(out.String(), "cmd> new\n") {
			t.Errorf("expected echoed command in output:\n%s", out.String())
		}
	})

	t.Run("unknown option", func(t *testing.T) {
		c := newConsole(&bytes.Buffer{})
		if err := c.Exec("option color 1"); !errors.Is(err, console.ErrInvalidArguments) {
			t.Errorf("expected ErrInvalidArguments, got %v", err)
		}
	})
}

func TestExec_RandomValues(t *testing.T) {
	var out bytes.Buffer
	c := newConsole(&out)
	for _, line := range []string{"new", "it RAND 3", "ih RAND"} {
		if err := c.Exec(line); err != nil {
			t.Fatalf("Exec(%q) error = %v", line, err)
		}
	}
	values := c.Queue().Values()
	if len(values) != 4 {
		t.Fatalf("expected 4 values, got %d", len(values))
	}
	for _, v := range values {
		if len(v) == 0 || v == "RAND" {
			t.Errorf("unexpected random value %q", v)
		}
	}
}

func TestExec_StatsAndLeakCheck(t *testing.T) {
	tr := harness.NewTracker()
	var out bytes.Buffer
	c := newConsole(&out, console.WithTracker(tr))
	for _, line := range []string{"new", "it a 3", "stats"} {
		if err := c.Exec(line); err != nil {
			t.Fatalf("Exec(%q) error = %v", line, err)
		}
	}
	if !strings.Contains(out.String(), "live_blocks:7\n") {
		t.Errorf("expected live block count in stats:\n%s", out.String())
	}
	if err := c.Exec("free"); err != nil {
		t.Fatalf("free error = %v", err)
	}
	if tr.LiveBlocks() != 0 {
		t.Errorf("expected all blocks released, got %d", tr.LiveBlocks())
	}
}

func TestRun_Canceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newConsole(&bytes.Buffer{})
	if err := c.Run(ctx, pr); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		cmd  string
		args []string
	}{
		{line: "IT value 3", cmd: "it", args: []string{"value", "3"}},
		{line: "   rh   ", cmd: "rh", args: []string{}},
		{line: "# comment", cmd: ""},
		{line: "", cmd: ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := console.ParseCommand(tt.line)
			if got.Cmd != tt.cmd {
				t.Errorf("expected cmd %q, got %q", tt.cmd, got.Cmd)
			}
			if len(got.Args) != len(tt.args) {
				t.Fatalf("expected %d args, got %d", len(tt.args), len(got.Args))
			}
			for i := range tt.args {
				if got.Args[i] != tt.args[i] {
					t.Errorf("arg %d: expected %q, got %q", i, tt.args[i], got.Args[i])
				}
			}
		})
	}
}
