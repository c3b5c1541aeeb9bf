package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// withInterrupt returns a context that is canceled on SIGTERM or SIGINT.
// onSignal, when set, runs before the cancellation. The returned stop
// function releases the handler and cancels the context.
func withInterrupt(parent context.Context, onSignal func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			if onSignal != nil {
				onSignal(sig)
			}
			cancel()
		case <-ctx.Done():
			// canceled elsewhere
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
