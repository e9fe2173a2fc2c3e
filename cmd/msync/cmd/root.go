// Package cmd implements the msync CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/commercekit/marketsync/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "msync",
		Short: "CLI client for the marketsync daemon",
		Long: "msync is a command-line client for the marketsync daemon API.\n" +
			"It lets you configure marketplace credentials, push products and\n" +
			"stock, track batch outcomes, and pull orders from the terminal.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.msync.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "daemon URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(configureCmd())
	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(stockCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(ordersCmd())
	rootCmd.AddCommand(refdataCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".msync")
	}

	viper.SetEnvPrefix("MSYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
