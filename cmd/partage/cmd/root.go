package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "partage",
	Short: "Partage collaboration server",
	Long: `Partage is a small collaboration backend: accounts, per-user file
storage with sharing, a shared chat log, and a live presence feed.

Use "partage [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
