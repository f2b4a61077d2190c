// Package source loads report rows from the files the validation suite
// writes.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/altinukshini/truelies-tui/internal/model"
)

// ErrUnsupportedFormat is returned for report files of an unknown type.
var ErrUnsupportedFormat = errors.New("unsupported report format")

type Format string

const (
	FormatJSON   Format = "json"
	FormatHTML   Format = "html"
	FormatSQLite Format = "sqlite"
)

type Options struct {
	// PassThreshold decides PASS/FAIL for sources that carry only a score.
	// Nil means model.DefaultPassThreshold; zero passes every row.
	PassThreshold *float64
	Logger        *slog.Logger
}

func (o Options) threshold() float64 {
	if o.PassThreshold == nil {
		return model.DefaultPassThreshold
	}
	return *o.PassThreshold
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Load reads every row of the report at path. Rows are numbered from 1 in
// file order.
func Load(ctx context.Context, path string, opts Options) ([]model.Row, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}

	var rows []model.Row
	switch format {
	case FormatJSON:
		rows, err = loadJSONFile(path, opts)
	case FormatHTML:
		rows, err = loadHTMLFile(path)
	case FormatSQLite:
		rows, err = loadSQLite(ctx, path, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s report %s: %w", format, path, err)
	}
	for i := range rows {
		rows[i].ID = i + 1
	}
	opts.logger().Info("report loaded", "path", path, "format", string(format), "rows", len(rows))
	return rows, nil
}
