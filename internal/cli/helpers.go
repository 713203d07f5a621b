package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/autocore/internal/logging"
	"github.com/aretw0/autocore/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger configures the application logger on w.
// In debug mode everything down to debug level is written; otherwise level
// applies.
func NewLogger(w io.Writer, debug bool, level slog.Level, format logging.Format) *slog.Logger {
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(w, level, format)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			if e.Err != nil {
				logger.DebugContext(ctx, "Transition (Rejected)", "machine", e.Machine, "from", e.From, "to", e.To, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "Transition", "machine", e.Machine, "from", e.From, "to", e.To)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			if e.Err != nil {
				logger.DebugContext(ctx, "Workflow Step (Error)", "workflow", e.Workflow, "step", e.Step, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "Workflow Step", "workflow", e.Workflow, "step", e.Step, "took", e.Duration)
		},
		OnPublish: func(ctx context.Context, e *domain.PublishEvent) {
			logger.DebugContext(ctx, "Publish", "from", e.From, "type", e.Event.Type(), "delivered", e.Delivered)
		},
		OnStop: func(ctx context.Context, e *domain.StopEvent) {
			logger.DebugContext(ctx, "Loop Stopped", "ticks", e.Ticks, "failures", e.Failures, "overruns", e.Overruns)
		},
	}
}
