package main

import (
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pricelens",
	Short: "PriceLens - catalog price assistant for a luxury boutique",
	Long: `PriceLens answers customer price questions from the boutique catalog and,
when asked, from the brand's official website.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log.format (console, json)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
