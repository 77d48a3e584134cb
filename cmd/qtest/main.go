package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/ttn-nguyen42/natq/console"
	"github.com/ttn-nguyen42/natq/harness"
)

func main() {
	ctx, stop := console.CancelOnSignal(context.Background())
	defer stop()

	c, input, err := getConsole()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	defer input.Close()

	if err := c.Run(ctx, input); err != nil {
		log.Println(err)
		stop()
		os.Exit(1)
	}
}

func getConsole() (*console.Console, io.ReadCloser, error) {
	var file string
	flag.StringVar(&file, "f", "", "Read commands from file instead of stdin")

	var echo bool
	flag.BoolVar(&echo, "v", false, "Echo commands as they are executed")

	var failRate int
	flag.IntVar(&failRate, "fail", 0, "Percentage of allocations that fail")

	var seed int64
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "Seed for random values and failures")

	var length int
	flag.IntVar(&length, "length", 1024, "Buffer size used when removing values")

	flag.Parse()

	input := io.ReadCloser(os.Stdin)
	if len(file) > 0 {
		f, err := os.Open(file)
		if err != nil {
			return nil, nil, err
		}
		input = f
	}

	tracker := harness.NewTracker(
		harness.WithSeed(seed),
		harness.WithFailRate(failRate),
	)
	c := console.New(
		console.WithTracker(tracker),
		console.WithEcho(echo),
		console.WithSeed(seed),
		console.WithStringLength(length),
	)
	return c, input, nil
}
