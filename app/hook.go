package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownContext is canceled on SIGINT or SIGTERM.
func ShutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
