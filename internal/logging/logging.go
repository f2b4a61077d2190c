// Package logging builds the slog loggers used by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ParseLevel maps a config level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ForTUI returns a logger for the interactive viewer. The TUI owns the
// terminal, so logs go to path through tea.LogToFile, or nowhere when
// path is empty. The returned close func is never nil.
func ForTUI(path string, level slog.Level) (*slog.Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	f, err := tea.LogToFile(path, "truelies")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f.Close, nil
}
