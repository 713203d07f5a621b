package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/autocore/internal/presentation/graph"
	"github.com/aretw0/autocore/internal/runtime"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:       "graph [engine|workflows]",
	Short:     "Export a Mermaid diagram of the engine state machine or the workflows",
	Long:      `Outputs a Mermaid diagram (graph TD) of the engine lifecycle state machine (default) or of the start, shutdown and emergency stop workflows.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"engine", "workflows"},
	Run: func(cmd *cobra.Command, args []string) {
		target := "engine"
		if len(args) > 0 {
			target = args[0]
		}

		switch target {
		case "engine":
			fmt.Print(graph.EngineMachine(nil))
		case "workflows":
			fmt.Print(graph.Workflows(runtime.Workflows()...))
		default:
			fmt.Printf("Error: unknown graph %q (want engine or workflows)\n", target)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
