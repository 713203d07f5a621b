package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/autocore/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "autocore",
	Short: "Autocore is a real-time control simulation for cooperating car components",
	Long: `Autocore drives an engine, brakes, steering and a dashboard from a fixed-rate
event loop, routes their events over a bus and checks safety limits as it goes.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and lifecycle tracing")
	rootCmd.PersistentFlags().String("log-format", "", "Log output format: text or json (overrides the config file)")
}

// loadConfig reads the config file named by --config and applies the
// persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}
	return cfg, nil
}
