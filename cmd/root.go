package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel     string // Log verbosity level
	outputFormat string // Result format: table or json
	noColor      bool   // Disable coloured table output
	scenarioPath string // Optional YAML/TOML scenario file
	explain      bool   // Print the reason for every step
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "memsim",
	Short: "Step-by-step simulator for contiguous allocation and page replacement",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if outputFormat != formatTable && outputFormat != formatJSON {
			logrus.Fatalf("Invalid output format %q (want %s or %s)", outputFormat, formatTable, formatJSON)
		}
		if noColor {
			color.NoColor = true
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up flags shared by every subcommand
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", formatTable, "Output format (table, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML or TOML scenario file (overrides input flags)")
	rootCmd.PersistentFlags().BoolVar(&explain, "explain", false, "Print the reason behind every step")
}
