package console

import (
	"io"
	"os"
	"time"

	"github.com/ttn-nguyen42/natq/harness"
)

const (
	defaultStringLength = 1024
	defaultShowLimit    = 30
)

type Options struct {
	Output       io.Writer
	Tracker      *harness.Tracker
	Echo         bool
	StringLength int
	ShowLimit    int
	Seed         int64
}

func defaultOptions() *Options {
	return &Options{
		Output:       os.Stdout,
		StringLength: defaultStringLength,
		ShowLimit:    defaultShowLimit,
		Seed:         time.Now().UnixNano(),
	}
}

type Option func(o *Options)

func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Output = w
	}
}

// WithTracker makes every queue created by the console allocate from tr.
func WithTracker(tr *harness.Tracker) Option {
	return func(o *Options) {
		o.Tracker = tr
	}
}

// WithEcho prints every command before running it.
func WithEcho(echo bool) Option {
	return func(o *Options) {
		o.Echo = echo
	}
}

// WithStringLength sets the buffer capacity used by rh.
func WithStringLength(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.StringLength = n
		}
	}
}

// WithShowLimit caps how many elements are printed.
func WithShowLimit(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.ShowLimit = n
		}
	}
}

func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}
