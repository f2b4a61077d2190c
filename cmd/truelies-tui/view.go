package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/altinukshini/truelies-tui/internal/logging"
	"github.com/altinukshini/truelies-tui/internal/source"
	"github.com/altinukshini/truelies-tui/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view <report>",
	Short: "Open the interactive viewer",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := source.DetectFormat(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open report: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.ForTUI(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer closeLog()

	app := tui.NewApp(cfg, path, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "err", err)
		return err
	}
	return nil
}
