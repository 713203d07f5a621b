package domain

import (
	"context"
	"time"
)

// TickEvent describes one completed scheduler tick.
type TickEvent struct {
	Index    uint64
	Duration time.Duration
	Interval time.Duration
	Overrun  bool
	Err      error
}

// StopEvent is fired once when a scheduler run is finalized.
type StopEvent struct {
	Ticks    uint64
	Failures uint64
	Overruns uint64
	Elapsed  time.Duration
}

// TransitionEvent reports a state transition attempt.
// Err is set when the transition was rejected.
type TransitionEvent struct {
	Machine string
	From    string
	To      string
	Err     error
}

// StepEvent reports the outcome of a workflow step.
type StepEvent struct {
	Workflow string
	Step     string
	Index    int
	Total    int
	Duration time.Duration
	Err      error
}

// PublishEvent reports an event routed through the bus.
type PublishEvent struct {
	From      ComponentID
	Event     Event
	Delivered int
}

// WarningEvent reports a safety finding raised during a tick.
type WarningEvent struct {
	Tick     uint64
	Rule     string
	Severity string
	Message  string
}

// LifecycleHooks defines callbacks for observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnTick       func(context.Context, *TickEvent)
	OnStop       func(context.Context, *StopEvent)
	OnTransition func(context.Context, *TransitionEvent)
	OnStep       func(context.Context, *StepEvent)
	OnPublish    func(context.Context, *PublishEvent)
	OnWarning    func(context.Context, *WarningEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTick:       chain(h.OnTick, other.OnTick),
		OnStop:       chain(h.OnStop, other.OnStop),
		OnTransition: chain(h.OnTransition, other.OnTransition),
		OnStep:       chain(h.OnStep, other.OnStep),
		OnPublish:    chain(h.OnPublish, other.OnPublish),
		OnWarning:    chain(h.OnWarning, other.OnWarning),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
