package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// shutdownSignals stop a running build or dev server. Windows only ever
// delivers os.Interrupt; listing SIGTERM there is harmless.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
