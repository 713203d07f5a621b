package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/autocore/internal/cli"
	"github.com/aretw0/autocore/pkg/safety"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a single set of readings against the safety limits",
	Long: `Runs the safety monitor once over the readings given as flags, using the
limits from the config file. Exits with status 2 when the readings are unsafe.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Error: invalid configuration: %v\n", err)
			os.Exit(1)
		}

		flags := cmd.Flags()
		var r safety.Readings
		r.Speed, _ = flags.GetInt("speed")
		r.Temperature, _ = flags.GetFloat64("temp")
		r.RPM, _ = flags.GetInt("rpm")
		r.Fuel, _ = flags.GetInt("fuel")
		r.BrakePressure, _ = flags.GetInt("brake")
		r.EngineRunning, _ = flags.GetBool("running")

		err = cli.Check(os.Stdout, termenv.ColorProfile(), cfg.Limits, r)
		switch {
		case errors.Is(err, cli.ErrUnsafe):
			os.Exit(2)
		case err != nil:
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Int("speed", 0, "Speed in km/h")
	checkCmd.Flags().Float64("temp", 90, "Engine temperature in °C")
	checkCmd.Flags().Int("rpm", 800, "Engine RPM")
	checkCmd.Flags().Int("fuel", 100, "Fuel level in percent")
	checkCmd.Flags().Int("brake", 0, "Brake pressure in percent")
	checkCmd.Flags().Bool("running", true, "Whether the engine is running")
}
