package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/muesli/termenv"

	"github.com/aretw0/autocore/internal/config"
	"github.com/aretw0/autocore/internal/logging"
	"github.com/aretw0/autocore/internal/metrics"
	"github.com/aretw0/autocore/internal/presentation/tui"
	"github.com/aretw0/autocore/internal/runtime"
	"github.com/aretw0/autocore/pkg/domain"
	"github.com/aretw0/autocore/pkg/safety"
	"github.com/aretw0/autocore/pkg/scheduler"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Config config.Config
	Debug  bool
	// Quiet suppresses the banner, the demos and the per-tick dashboard.
	Quiet   bool
	Metrics bool
	Report  bool

	Out     io.Writer
	Logger  *slog.Logger
	Profile termenv.Profile
	// Clock overrides the scheduler clock; nil means wall time.
	Clock scheduler.Clock
}

// RunSession drives one complete lifecycle: initialize, start, event loop,
// shutdown. The loop ends after Config.Ticks ticks, or on cancellation when
// Ticks is zero.
func RunSession(ctx context.Context, opts RunOptions) (scheduler.Report, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	p := opts.Profile

	hooks := domain.LifecycleHooks{}
	if opts.Debug {
		hooks = createDebugHooks(logger)
	}
	var collector *metrics.Collector
	if opts.Metrics {
		collector = metrics.New()
		hooks = hooks.Merge(collector.Hooks())
	}

	sysOpts := []runtime.Option{
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(hooks),
	}
	if opts.Clock != nil {
		sysOpts = append(sysOpts, runtime.WithClock(opts.Clock))
	}
	if !opts.Quiet {
		sysOpts = append(sysOpts, runtime.WithFrameObserver(func(_ context.Context, snap runtime.Snapshot) {
			fmt.Fprint(out, tui.RenderDashboard(p, snap))
		}))
	}
	sys := runtime.New(opts.Config.Runtime(), sysOpts...)

	if !opts.Quiet {
		tui.PrintBanner(out, p)
	}
	if err := sys.Initialize(); err != nil {
		return scheduler.Report{}, err
	}
	if err := sys.Start(ctx); err != nil {
		return scheduler.Report{}, fmt.Errorf("failed to start car: %w", err)
	}
	if !opts.Quiet {
		printSystemMessage(out, "Car is ready to drive (engine %s)", sys.Engine().EngineState())
		demoStateMachine(out, sys)
		if opts.Config.Ticks > 10 {
			demoSafety(out, p, sys.Monitor())
		}
	}

	report := sys.RunEventLoop(ctx, opts.Config.Ticks)

	if sys.EmergencyStopped() {
		printSystemMessage(out, "Emergency stop executed, skipping shutdown")
	} else if err := sys.Shutdown(context.WithoutCancel(ctx)); err != nil {
		return report, fmt.Errorf("failed to shut down car: %w", err)
	} else if !opts.Quiet {
		printSystemMessage(out, "Car shut down complete")
	}

	if opts.Report {
		if err := writeReport(out, report, sys.Snapshot()); err != nil {
			return report, err
		}
	}
	if collector != nil {
		if err := collector.WriteText(out); err != nil {
			return report, err
		}
	}
	return report, nil
}

// demoStateMachine shows that the engine refuses a second start.
func demoStateMachine(out io.Writer, sys *runtime.System) {
	printSystemMessage(out, "State machine check: starting a running engine")
	if err := sys.Engine().Start(); err != nil {
		printSystemMessage(out, "Correctly rejected: %v", err)
	}
	printSystemMessage(out, "Current engine state: %s", sys.Engine().EngineState())
}

// demoSafety runs the monitor once on an over-speed reading.
func demoSafety(out io.Writer, p termenv.Profile, m *safety.Monitor) {
	printSystemMessage(out, "Safety monitor check: 130 km/h, 85°C, 5000 rpm")
	findings := m.Check(safety.Readings{
		Speed:         130,
		Temperature:   85,
		RPM:           5000,
		Fuel:          50,
		EngineRunning: true,
	})
	fmt.Fprint(out, tui.RenderFindings(p, findings))
}

func writeReport(out io.Writer, report scheduler.Report, snap runtime.Snapshot) error {
	md := tui.ReportMarkdown(report, snap)
	render, err := tui.NewRenderer()
	if err != nil {
		// Fall back to raw markdown
		_, err = fmt.Fprintln(out, md)
		return err
	}
	rendered, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
