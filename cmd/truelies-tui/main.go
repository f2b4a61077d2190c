package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/altinukshini/truelies-tui/internal/config"
	"github.com/altinukshini/truelies-tui/internal/logging"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

var (
	// Global flags
	configPath string
	logFile    string
	logLevel   string

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "truelies-tui [report]",
		Short: "Browse chatbot validation reports in the terminal",
		Long: `truelies-tui loads a chatbot validation report (JSON, HTML or SQLite)
and lets you search, filter, sort and export the test results. Given only a
report path it opens the interactive viewer.`,
		Example: `  # Open the viewer
  truelies-tui results.json

  # Print failing results with a score below 0.5
  truelies-tui filter results.json --query "score<0.5"

  # Write a PDF of the passing results
  truelies-tui export report.html --format pdf --query pass --out ./exports`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runView(cmd, args)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "truelies-tui", version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (defaults to $TRUELIES_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (overrides log.file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides log.level)")

	rootCmd.AddCommand(viewCmd, filterCmd, statsCmd, exportCmd, versionCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logFile != "" {
		c.Log.File = logFile
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c
	return nil
}

// cliLogger logs to stderr; the TUI uses logging.ForTUI instead.
func cliLogger() *slog.Logger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(os.Stderr, level)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
