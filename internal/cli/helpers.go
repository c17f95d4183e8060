package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/aretw0/switchyard/internal/logging"
	"github.com/aretw0/switchyard/pkg/domain"
)

// SignalContext is cancelled by SIGINT or SIGTERM and remembers which one
// arrived, so an interrupted run can be told apart from a failed one.
type SignalContext struct {
	context.Context
	cancel context.CancelFunc
	ch     chan os.Signal
	caught atomic.Value
}

// NewSignalContext starts watching for SIGINT and SIGTERM until the returned
// context is done.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, cancel: cancel, ch: make(chan os.Signal, 1)}
	signal.Notify(sc.ch, os.Interrupt, syscall.SIGTERM)
	go sc.watch()
	return sc
}

func (sc *SignalContext) watch() {
	defer signal.Stop(sc.ch)
	select {
	case sig := <-sc.ch:
		sc.caught.Store(sig)
		sc.cancel()
	case <-sc.Done():
	}
}

// Stop releases the signal handler and cancels the context.
func (sc *SignalContext) Stop() {
	sc.cancel()
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sig, _ := sc.caught.Load().(os.Signal)
	return sig
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout menus).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// ExitCode maps the outcome of a command to the process exit status:
// the failing stage's status for *domain.ExitError, 0 for success and
// deliberate stops, 1 for everything else.
func ExitCode(err error) int {
	if err == nil || isInterrupted(err) {
		return 0
	}
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func isInterrupted(err error) bool {
	return domain.IsEarlyExit(err) || errors.Is(err, context.Canceled)
}
