package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// TerminationSignals are those signals which mixpkg considers to be requesting
// termination. Certain other signals that also request termination (such as
// SIGABRT) are intentionally ignored because they're handled by the Go runtime
// and have special behavior (such as dumping a stack trace).
var TerminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

// TerminationContext returns a context that's cancelled when a termination
// signal is received. The returned function stops signal handling.
func TerminationContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, TerminationSignals...)
}
