package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/autocore/internal/runtime"
)

// workflowsCmd represents the workflows command
var workflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "List the built-in workflows and their steps",
	Run: func(cmd *cobra.Command, args []string) {
		for _, wf := range runtime.Workflows() {
			fmt.Printf("%s: %s\n", wf.Name(), wf.Description())
			for i, step := range wf.Steps() {
				fmt.Printf("  %d. %s - %s\n", i+1, step.Name, step.Description)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(workflowsCmd)
}
