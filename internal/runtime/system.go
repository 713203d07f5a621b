package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/autocore/internal/components"
	"github.com/aretw0/autocore/internal/logging"
	"github.com/aretw0/autocore/pkg/bus"
	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/fsm"
	"github.com/aretw0/autocore/pkg/safety"
	"github.com/aretw0/autocore/pkg/scheduler"
)

// DefaultSafetyEvery is the default safety evaluation cadence, in ticks.
const DefaultSafetyEvery = 5

// Config tunes the orchestrator.
type Config struct {
	Scheduler scheduler.Config
	Limits    safety.Limits
	// SafetyEvery runs the safety monitor on ticks divisible by it.
	SafetyEvery uint64
	// AutoEmergencyStop runs the emergency stop workflow the first time a
	// check comes back unsafe, then stops the loop.
	AutoEmergencyStop bool
}

// DefaultConfig returns a 2 Hz loop with the default safety limits.
func DefaultConfig() Config {
	return Config{
		Scheduler:   scheduler.Config{TickInterval: scheduler.DefaultTickInterval},
		Limits:      safety.DefaultLimits(),
		SafetyEvery: DefaultSafetyEvery,
	}
}

// Option configures a System.
type Option func(*System)

// WithLogger configures the structured logger shared by every part.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *System) {
		s.hooks = hooks
	}
}

// WithClock replaces the scheduler's wall clock.
func WithClock(c scheduler.Clock) Option {
	return func(s *System) {
		s.clock = c
	}
}

// WithFrameObserver is called with a snapshot at the end of every cycle.
func WithFrameObserver(fn func(context.Context, Snapshot)) Option {
	return func(s *System) {
		s.onFrame = fn
	}
}

// System owns the components and the coordination core around them.
// It is driven from a single goroutine; only Stop may be called concurrently.
type System struct {
	cfg     Config
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	clock   scheduler.Clock
	onFrame func(context.Context, Snapshot)

	engine    *components.Engine
	brakes    *components.Brakes
	steering  *components.Steering
	dashboard *components.Dashboard
	// drivers are updated before the dashboard each cycle.
	drivers []components.Component

	bus     *bus.Bus
	monitor *safety.Monitor
	loop    *scheduler.Loop

	scenario  scenario
	tick      uint64
	findings  []safety.Finding
	emergency bool
}

// New wires the components, the bus, the monitor and the scheduler.
// Every component is registered on the bus; the dashboard subscribes to all.
func New(cfg Config, opts ...Option) *System {
	if cfg.SafetyEvery == 0 {
		cfg.SafetyEvery = DefaultSafetyEvery
	}
	s := &System{
		cfg:    cfg,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	copts := []components.Option{
		components.WithLogger(s.logger),
		components.WithEngineObserver(s.observeEngine),
	}
	s.engine = components.NewEngine(copts...)
	s.brakes = components.NewBrakes(copts...)
	s.steering = components.NewSteering(copts...)
	s.dashboard = components.NewDashboard(copts...)
	s.drivers = []components.Component{s.engine, s.brakes, s.steering}

	s.bus = bus.New(bus.WithLogger(s.logger))
	for _, c := range s.Components() {
		s.bus.Register(c.ID())
	}
	s.bus.SubscribeAll(domain.Dashboard)

	s.monitor = safety.NewMonitor(cfg.Limits)

	lopts := []scheduler.Option{
		scheduler.WithLogger(s.logger),
		scheduler.WithHooks(s.hooks),
	}
	if s.clock != nil {
		lopts = append(lopts, scheduler.WithClock(s.clock))
	}
	s.loop = scheduler.New(cfg.Scheduler, lopts...)
	s.scenario = newScenario()
	return s
}

// Components lists the parts in update order.
func (s *System) Components() []components.Component {
	return []components.Component{s.engine, s.brakes, s.steering, s.dashboard}
}

func (s *System) Engine() *components.Engine       { return s.engine }
func (s *System) Brakes() *components.Brakes       { return s.brakes }
func (s *System) Steering() *components.Steering   { return s.steering }
func (s *System) Dashboard() *components.Dashboard { return s.dashboard }
func (s *System) Bus() *bus.Bus                    { return s.bus }
func (s *System) Monitor() *safety.Monitor         { return s.monitor }
func (s *System) Loop() *scheduler.Loop            { return s.loop }
func (s *System) Config() Config                   { return s.cfg }

// EmergencyStopped reports whether the emergency stop workflow has run.
func (s *System) EmergencyStopped() bool { return s.emergency }

// Initialize brings every component online.
func (s *System) Initialize() error {
	l := s.monitor.Limits()
	s.logger.Info("initializing car system",
		"max_speed", l.MaxSpeed,
		"max_temperature", l.MaxTemperature,
		"max_rpm", l.MaxRPM,
	)
	for _, c := range s.Components() {
		if err := c.Initialize(); err != nil {
			return fmt.Errorf("initialize %s: %w", c.Name(), err)
		}
	}
	s.logger.Info("all components initialized")
	return nil
}

// Start runs the start workflow.
func (s *System) Start(ctx context.Context) error {
	return s.StartWorkflow().Execute(ctx, s)
}

// Shutdown runs the shutdown workflow.
func (s *System) Shutdown(ctx context.Context) error {
	return s.ShutdownWorkflow().Execute(ctx, s)
}

// EmergencyStop runs the emergency stop workflow.
func (s *System) EmergencyStop(ctx context.Context) error {
	s.emergency = true
	return s.EmergencyStopWorkflow().Execute(ctx, s)
}

// Stop asks a running event loop to end at the next tick boundary.
// It is safe to call from another goroutine.
func (s *System) Stop() {
	s.loop.Stop()
}

// ProcessCycle advances every component once and routes their events.
// Update failures are published as ComponentFault and returned joined; the
// remaining components still run.
func (s *System) ProcessCycle(ctx context.Context, speed int) error {
	var errs []error
	for _, c := range s.drivers {
		if err := c.Update(); err != nil {
			errs = append(errs, fmt.Errorf("update %s: %w", c.Name(), err))
			s.publish(ctx, domain.System, domain.ComponentFault{Component: c.Name(), Reason: err.Error()})
		}
	}

	for _, c := range s.drivers {
		for _, e := range c.OutgoingEvents() {
			s.publish(ctx, c.ID(), e)
		}
	}

	s.dashboard.ProcessEvents(s.bus.ReceiveAll(domain.Dashboard))

	s.dashboard.SetSpeed(speed)
	s.dashboard.UpdateOdometer(float64(s.dashboard.Speed()) / 10)
	if err := s.dashboard.Update(); err != nil {
		errs = append(errs, fmt.Errorf("update %s: %w", s.dashboard.Name(), err))
	}
	for _, e := range s.dashboard.OutgoingEvents() {
		s.publish(ctx, domain.Dashboard, e)
	}

	if s.onFrame != nil {
		s.onFrame(ctx, s.Snapshot())
	}
	return errors.Join(errs...)
}

// Readings captures the values the safety monitor evaluates.
func (s *System) Readings() safety.Readings {
	return safety.Readings{
		Speed:         s.dashboard.Speed(),
		Temperature:   s.engine.Temperature(),
		RPM:           s.engine.RPM(),
		Fuel:          s.dashboard.FuelLevel(),
		BrakePressure: s.brakes.Pressure(),
		EngineRunning: s.engine.IsRunning(),
	}
}

// CheckSafety evaluates the current readings. Every finding is shown on the
// dashboard (deduplicated there), logged and reported through OnWarning.
func (s *System) CheckSafety(ctx context.Context) []safety.Finding {
	findings := s.monitor.Check(s.Readings())
	s.findings = findings

	for _, f := range findings {
		msg := f.String()
		s.dashboard.AddWarning(msg)
		s.logger.WarnContext(ctx, "safety check",
			"rule", f.Rule.String(),
			"severity", f.Severity().String(),
			"current", f.Current,
			"limit", f.Limit,
		)
		if s.hooks.OnWarning != nil {
			s.hooks.OnWarning(ctx, &domain.WarningEvent{
				Tick:     s.tick,
				Rule:     f.Rule.String(),
				Severity: f.Severity().String(),
				Message:  msg,
			})
		}
	}
	if len(findings) > 0 && !safety.IsSafe(findings) {
		s.logger.ErrorContext(ctx, "critical safety issue", "highest", safety.Highest(findings).String())
	}
	return findings
}

// RunEventLoop drives the demo scenario for ticks ticks, or until ctx is done
// or Stop is called when ticks is zero.
func (s *System) RunEventLoop(ctx context.Context, ticks uint64) scheduler.Report {
	cb := func(ctx context.Context, tick uint64) error {
		return s.tickOnce(ctx, tick)
	}
	if ticks == 0 {
		return s.loop.Run(ctx, cb)
	}
	return s.loop.RunFor(ctx, ticks, cb)
}

func (s *System) tickOnce(ctx context.Context, tick uint64) error {
	s.tick = tick
	speed, err := s.scenario.step(tick, s.brakes, s.steering)
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	// A component fault fails the tick but does not skip the safety check.
	cycleErr := s.ProcessCycle(ctx, speed)
	if tick%s.cfg.SafetyEvery != 0 {
		return cycleErr
	}

	findings := s.CheckSafety(ctx)
	if s.cfg.AutoEmergencyStop && !s.emergency && !safety.IsSafe(findings) {
		s.logger.ErrorContext(ctx, "triggering emergency stop", "tick", tick)
		defer s.loop.Stop()
		if err := s.EmergencyStop(ctx); err != nil {
			return errors.Join(cycleErr, fmt.Errorf("emergency stop: %w", err))
		}
	}
	return cycleErr
}

func (s *System) publish(ctx context.Context, from domain.ComponentID, e domain.Event) {
	n := s.bus.Publish(from, e)
	if s.hooks.OnPublish != nil {
		s.hooks.OnPublish(ctx, &domain.PublishEvent{From: from, Event: e, Delivered: n})
	}
}

// observeEngine forwards engine transitions to OnTransition. The fsm
// observer carries no context, so the hook gets a background one.
func (s *System) observeEngine(from, to fsm.EngineState, err error) {
	if err != nil {
		s.logger.Warn("engine transition rejected", "from", from, "to", to, "err", err)
	} else {
		s.logger.Debug("engine transition", "from", from, "to", to)
	}
	if s.hooks.OnTransition != nil {
		s.hooks.OnTransition(context.Background(), &domain.TransitionEvent{
			Machine: "engine",
			From:    from.String(),
			To:      to.String(),
			Err:     err,
		})
	}
}
