package autocore

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/autocore/internal/runtime"
	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/fsm"
	"github.com/aretw0/autocore/pkg/safety"
	"github.com/aretw0/autocore/pkg/scheduler"
)

// Car is the high-level entry point for the library.
// It wraps the internal orchestrator and exposes its lifecycle.
type Car struct {
	cfg     runtime.Config
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	clock   scheduler.Clock
	onFrame func(context.Context, Frame)

	sys *runtime.System
}

// Frame is a read-only view of the car after a processing cycle.
type Frame = runtime.Snapshot

// Option defines a functional option for configuring the Car.
type Option func(*Car)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Car) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Car) {
		c.logger = logger
	}
}

// WithTickInterval sets the scheduler period.
func WithTickInterval(d time.Duration) Option {
	return func(c *Car) {
		c.cfg.Scheduler.TickInterval = d
	}
}

// WithVerboseTiming logs every tick duration at info level.
func WithVerboseTiming(v bool) Option {
	return func(c *Car) {
		c.cfg.Scheduler.VerboseTiming = v
	}
}

// WithLimits replaces the safety thresholds.
func WithLimits(l safety.Limits) Option {
	return func(c *Car) {
		c.cfg.Limits = l
	}
}

// WithSafetyEvery sets how often, in ticks, the safety monitor runs.
func WithSafetyEvery(n uint64) Option {
	return func(c *Car) {
		c.cfg.SafetyEvery = n
	}
}

// WithAutoEmergencyStop runs the emergency stop workflow on the first unsafe
// check and ends the run.
func WithAutoEmergencyStop(v bool) Option {
	return func(c *Car) {
		c.cfg.AutoEmergencyStop = v
	}
}

// WithClock replaces the scheduler clock, typically with a
// scheduler.ManualClock in tests.
func WithClock(clock scheduler.Clock) Option {
	return func(c *Car) {
		c.clock = clock
	}
}

// WithFrameObserver is called after every processing cycle.
func WithFrameObserver(fn func(context.Context, Frame)) Option {
	return func(c *Car) {
		c.onFrame = fn
	}
}

// New creates a car with default settings (2 Hz, standard limits).
func New(opts ...Option) *Car {
	c := &Car{cfg: runtime.DefaultConfig()}
	for _, opt := range opts {
		opt(c)
	}

	sysOpts := []runtime.Option{
		runtime.WithLogger(c.logger),
		runtime.WithLifecycleHooks(c.hooks),
	}
	if c.clock != nil {
		sysOpts = append(sysOpts, runtime.WithClock(c.clock))
	}
	if c.onFrame != nil {
		sysOpts = append(sysOpts, runtime.WithFrameObserver(c.onFrame))
	}
	c.sys = runtime.New(c.cfg, sysOpts...)
	return c
}

// Initialize brings every component online.
func (c *Car) Initialize() error { return c.sys.Initialize() }

// Start runs the start workflow.
func (c *Car) Start(ctx context.Context) error { return c.sys.Start(ctx) }

// Run drives the demo scenario for ticks ticks. With ticks == 0 it runs until
// ctx is cancelled or Stop is called.
func (c *Car) Run(ctx context.Context, ticks uint64) scheduler.Report {
	return c.sys.RunEventLoop(ctx, ticks)
}

// Stop ends a running loop at the next tick boundary. Safe for concurrent use.
func (c *Car) Stop() { c.sys.Stop() }

// Shutdown runs the shutdown workflow.
func (c *Car) Shutdown(ctx context.Context) error { return c.sys.Shutdown(ctx) }

// EmergencyStop runs the emergency stop workflow.
func (c *Car) EmergencyStop(ctx context.Context) error { return c.sys.EmergencyStop(ctx) }

// EmergencyStopped reports whether the emergency stop workflow has run.
func (c *Car) EmergencyStopped() bool { return c.sys.EmergencyStopped() }

// Readings returns the current safety snapshot.
func (c *Car) Readings() safety.Readings { return c.sys.Readings() }

// CheckSafety evaluates the current readings now.
func (c *Car) CheckSafety(ctx context.Context) []safety.Finding { return c.sys.CheckSafety(ctx) }

// EngineState returns the engine lifecycle state.
func (c *Car) EngineState() fsm.EngineState { return c.sys.Engine().EngineState() }

// Frame captures the current state.
func (c *Car) Frame() Frame { return c.sys.Snapshot() }
