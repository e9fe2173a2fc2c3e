// Package cmd implements the CLI commands for the marketsync daemon.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "marketsyncd",
	Short: "Marketplace synchronization daemon",
	Long: "marketsyncd keeps a merchant catalog in sync with a Trendyol-style marketplace:\n" +
		"it pushes products, stock, and prices, tracks asynchronous batch outcomes,\n" +
		"and pulls orders for local processing.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
