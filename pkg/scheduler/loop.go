package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/autocore/pkg/domain"
)

// DefaultTickInterval is used when Config.TickInterval is not positive (2 Hz).
const DefaultTickInterval = 500 * time.Millisecond

// Status is the lifecycle phase of a Loop.
type Status int

const (
	Idle Status = iota
	Running
	Stopped
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config configures the tick rate and timing diagnostics.
type Config struct {
	TickInterval time.Duration
	// VerboseTiming logs every tick's duration at info level instead of debug.
	VerboseTiming bool
}

// Callback is invoked once per tick with the zero-based tick index.
// A returned error is reported but does not stop the loop.
type Callback func(ctx context.Context, tick uint64) error

// TickResult describes a single tick.
type TickResult struct {
	Index    uint64
	Duration time.Duration
	Overrun  bool
	Err      error
}

// Report summarizes a run.
type Report struct {
	Ticks    uint64
	Failures uint64
	Overruns uint64
	Elapsed  time.Duration
}

// Loop runs a callback at a fixed rate.
// Stop may be called from any goroutine; everything else belongs to the
// goroutine driving the loop.
type Loop struct {
	cfg    Config
	clock  Clock
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	running  atomic.Bool
	ticks    atomic.Uint64
	failures atomic.Uint64
	overruns atomic.Uint64

	mu      sync.Mutex
	status  Status
	looping bool
	epoch   time.Time
	report  Report
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHooks registers OnTick and OnStop observers.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Loop) {
		l.hooks = hooks
	}
}

// New creates an idle loop.
func New(cfg Config, opts ...Option) *Loop {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	l := &Loop{
		cfg:    cfg,
		clock:  realClock{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Config returns the effective configuration.
func (l *Loop) Config() Config {
	return l.cfg
}

// Status returns the current lifecycle phase.
func (l *Loop) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// IsRunning reports whether the loop accepts further ticks.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// TickCount returns the number of ticks completed since Start.
func (l *Loop) TickCount() uint64 {
	return l.ticks.Load()
}

// Elapsed returns the time since Start, or zero if never started.
func (l *Loop) Elapsed() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.status == Idle {
		return 0
	}
	if l.status == Stopped {
		return l.report.Elapsed
	}
	return l.clock.Now().Sub(l.epoch)
}

// Start records the epoch and resets the counters.
func (l *Loop) Start() {
	l.mu.Lock()
	l.status = Running
	l.epoch = l.clock.Now()
	l.report = Report{}
	l.mu.Unlock()

	l.ticks.Store(0)
	l.failures.Store(0)
	l.overruns.Store(0)
	l.running.Store(true)

	l.logger.Info("event loop started",
		"tick_interval", l.cfg.TickInterval,
		"rate_hz", float64(time.Second)/float64(l.cfg.TickInterval),
	)
}

// Stop ends the run.
// Inside Run or RunFor the loop exits at the next tick boundary and finalizes
// there; otherwise the run is finalized immediately. Finalization happens once.
func (l *Loop) Stop() {
	l.running.Store(false)

	l.mu.Lock()
	looping := l.looping
	l.mu.Unlock()

	if !looping {
		l.finalize(context.Background())
	}
}

// Report returns the summary of the last finished run, or live counters while
// a run is in progress.
func (l *Loop) Report() Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.status == Stopped {
		return l.report
	}
	r := l.snapshot()
	if l.status == Running {
		r.Elapsed = l.clock.Now().Sub(l.epoch)
	}
	return r
}

// Tick invokes cb once and measures it.
// Errors and panics from cb are captured in the result, never propagated.
func (l *Loop) Tick(ctx context.Context, cb Callback) TickResult {
	index := l.ticks.Load()
	start := l.clock.Now()
	err := invoke(ctx, cb, index)
	took := l.clock.Now().Sub(start)
	l.ticks.Add(1)

	res := TickResult{
		Index:    index,
		Duration: took,
		Overrun:  took > l.cfg.TickInterval,
		Err:      err,
	}

	if err != nil {
		l.failures.Add(1)
		l.logger.Warn("tick failed", "tick", index, "err", err)
	}
	if res.Overrun {
		l.overruns.Add(1)
	}

	if l.cfg.VerboseTiming {
		l.logger.Info("tick timing", "tick", index, "took", took)
	} else {
		l.logger.Debug("tick timing", "tick", index, "took", took)
	}

	if l.hooks.OnTick != nil {
		l.hooks.OnTick(ctx, &domain.TickEvent{
			Index:    index,
			Duration: took,
			Interval: l.cfg.TickInterval,
			Overrun:  res.Overrun,
			Err:      err,
		})
	}
	return res
}

// Run ticks continuously until Stop is called or ctx is done.
func (l *Loop) Run(ctx context.Context, cb Callback) Report {
	return l.loop(ctx, 0, false, cb)
}

// RunFor performs at most n ticks and always finalizes the run.
// It does not sleep after the final tick.
func (l *Loop) RunFor(ctx context.Context, n uint64, cb Callback) Report {
	return l.loop(ctx, n, true, cb)
}

func (l *Loop) loop(ctx context.Context, limit uint64, bounded bool, cb Callback) Report {
	l.Start()
	l.setLooping(true)
	defer func() {
		l.setLooping(false)
		l.finalize(context.WithoutCancel(ctx))
	}()

	for i := uint64(0); !bounded || i < limit; i++ {
		if !l.running.Load() || ctx.Err() != nil {
			break
		}

		res := l.Tick(ctx, cb)

		if bounded && i+1 == limit {
			break
		}
		if !l.running.Load() {
			break
		}
		l.pace(ctx, res)
	}

	return l.Report()
}

// pace sleeps for the remainder of the interval, or logs an overrun.
func (l *Loop) pace(ctx context.Context, res TickResult) {
	if res.Overrun {
		l.logger.Warn("tick overrun, can't keep up",
			"tick", res.Index,
			"took", res.Duration,
			"target", l.cfg.TickInterval,
		)
		return
	}
	if wait := l.cfg.TickInterval - res.Duration; wait > 0 {
		l.clock.Sleep(ctx, wait)
	}
}

func (l *Loop) setLooping(v bool) {
	l.mu.Lock()
	l.looping = v
	l.mu.Unlock()
}

func (l *Loop) finalize(ctx context.Context) {
	l.mu.Lock()
	if l.status != Running {
		l.mu.Unlock()
		return
	}
	l.running.Store(false)
	l.status = Stopped
	l.report = l.snapshot()
	l.report.Elapsed = l.clock.Now().Sub(l.epoch)
	report := l.report
	l.mu.Unlock()

	l.logger.Info("event loop stopped",
		"ticks", report.Ticks,
		"failures", report.Failures,
		"overruns", report.Overruns,
		"elapsed", report.Elapsed,
	)

	if l.hooks.OnStop != nil {
		l.hooks.OnStop(ctx, &domain.StopEvent{
			Ticks:    report.Ticks,
			Failures: report.Failures,
			Overruns: report.Overruns,
			Elapsed:  report.Elapsed,
		})
	}
}

// snapshot must be called with mu held.
func (l *Loop) snapshot() Report {
	return Report{
		Ticks:    l.ticks.Load(),
		Failures: l.failures.Load(),
		Overruns: l.overruns.Load(),
	}
}

func invoke(ctx context.Context, cb Callback, index uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Tick: index, Value: r}
		}
	}()
	return cb(ctx, index)
}
