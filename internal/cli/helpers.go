package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tracehook/internal/logging"
	"github.com/aretw0/tracehook/pkg/observability"
	"github.com/aretw0/tracehook/pkg/ports"
)

// interrupted is the cancel cause of a context stopped by a signal.
type interrupted struct {
	sig os.Signal
}

func (i *interrupted) Error() string {
	return "interrupted by " + i.sig.String()
}

// withSignals returns a context cancelled on SIGINT or SIGTERM, with the
// signal recorded as its cause. The returned func releases the handler.
func withSignals(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			cancel(&interrupted{sig: sig})
		case <-ctx.Done():
		}
	}()
	return ctx, func() { cancel(nil) }
}

// stopSignal returns the signal that cancelled ctx, or nil.
func stopSignal(ctx context.Context) os.Signal {
	var i *interrupted
	if errors.As(context.Cause(ctx), &i) {
		return i.sig
	}
	return nil
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the trace lines on Stdout).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// createDebugInspectors returns the inspectors stacked in debug mode.
func createDebugInspectors(logger *slog.Logger, debug bool) []ports.Inspector {
	if !debug {
		return nil
	}
	return []ports.Inspector{observability.NewDebugInspector(logger)}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
