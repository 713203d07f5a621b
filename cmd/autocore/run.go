package main

import (
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/autocore/internal/cli"
	"github.com/aretw0/autocore/internal/logging"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the car simulation",
	Long: `Initializes and starts the car, then drives the demo scenario through the
event loop. With --ticks 0 the loop runs until interrupted (Ctrl+C).`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		flags := cmd.Flags()
		if flags.Changed("ticks") {
			cfg.Ticks, _ = flags.GetUint64("ticks")
		}
		if flags.Changed("interval") {
			cfg.TickInterval, _ = flags.GetDuration("interval")
		}
		if flags.Changed("verbose-timing") {
			cfg.VerboseTiming, _ = flags.GetBool("verbose-timing")
		}
		if flags.Changed("auto-emergency") {
			cfg.AutoEmergencyStop, _ = flags.GetBool("auto-emergency")
		}
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Error: invalid configuration: %v\n", err)
			os.Exit(1)
		}

		debug, _ := cmd.Flags().GetBool("debug")
		quiet, _ := flags.GetBool("quiet")
		withMetrics, _ := flags.GetBool("metrics")
		withReport, _ := flags.GetBool("report")

		level, _ := cfg.LogLevel()
		format, _ := logging.ParseFormat(cfg.Log.Format)
		logger := cli.NewLogger(os.Stderr, debug, level, format)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		_, err = cli.RunSession(ctx, cli.RunOptions{
			Config:  cfg,
			Debug:   debug,
			Quiet:   quiet,
			Metrics: withMetrics,
			Report:  withReport,
			Out:     os.Stdout,
			Logger:  logger,
			Profile: termenv.ColorProfile(),
		})
		if sig := ctx.Signal(); sig != nil {
			fmt.Printf("\nInterrupted by %v\n", sig)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Uint64P("ticks", "n", 60, "Number of ticks to run (0 runs until interrupted)")
	runCmd.Flags().Duration("interval", 500*time.Millisecond, "Tick interval")
	runCmd.Flags().Bool("verbose-timing", false, "Log the duration of every tick")
	runCmd.Flags().Bool("auto-emergency", false, "Run the emergency stop workflow on the first unsafe check")
	runCmd.Flags().Bool("metrics", false, "Print Prometheus metrics after the run")
	runCmd.Flags().Bool("report", false, "Print a markdown run report after the run")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress the banner, demos and per-tick dashboard")

	// 'run' is the default when no command is provided.
	rootCmd.Run = runCmd.Run
}
