package console

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// CancelOnSignal returns a context canceled on SIGINT or SIGTERM. The returned
// stop function stops listening and cancels the context.
func CancelOnSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	cctx, cancel := context.WithCancel(ctx)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer cancel()
		defer signal.Stop(ch)
		select {
		case <-cctx.Done():
			return
		case sig := <-ch:
			log.Printf("signal captured, stopping console, signal=%v", sig)
			return
		}
	}()
	return cctx, cancel
}
