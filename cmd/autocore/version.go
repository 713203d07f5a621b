package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/autocore"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Autocore",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Autocore v%s\n", autocore.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
