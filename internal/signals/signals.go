// Package signals wires OS interrupt/termination signals to a
// context.Context, following the cancellable-run-context idiom
// cmd/superpose uses to tear the saturation loop down cleanly on
// SIGINT/SIGTERM.
package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

var (
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
)

// Context returns a context.Context cancelled on SIGINT or SIGTERM.
// A second signal after cancellation terminates the process
// immediately, matching pkg/lib/signals.Context()'s "second signal,
// exit directly" behavior — the driver's own cancellation handling
// only gets one graceful chance to unwind.
func Context() context.Context {
	once.Do(func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, shutdownSignals...)
		ctx, cancel = context.WithCancel(context.Background())
		go func() {
			<-c
			cancel()
			<-c
			os.Exit(1)
		}()
	})
	return ctx
}
