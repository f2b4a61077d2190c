// Package export writes the visible part of a report to disk.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/altinukshini/truelies-tui/internal/model"
)

const (
	DefaultJSONName = "validation_results.json"
	DefaultTitle    = "Chatbot Validation Report"

	// FileTimestamp is safe in file names on every platform.
	FileTimestamp = "2006-01-02T15-04-05"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a format name from a flag or config.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (use json, yaml or pdf)", s)
}

// Writer writes export files into Dir.
type Writer struct {
	Dir      string
	JSONName string
	Title    string
	Now      func() time.Time
}

func (w Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

func (w Writer) title() string {
	if w.Title == "" {
		return DefaultTitle
	}
	return w.Title
}

// Snapshot captures rows for YAML and PDF export.
func (w Writer) Snapshot(rows []model.Row, total int) model.Snapshot {
	return model.NewSnapshot(w.title(), rows, total, w.now())
}

// JSON writes the records as an indented array and returns the file path.
func (w Writer) JSON(records []model.Record) (string, error) {
	name := w.JSONName
	if name == "" {
		name = DefaultJSONName
	}
	return w.create(name, func(f io.Writer) error { return WriteJSON(f, records) })
}

// WriteJSON encodes records with two-space indentation. No records encode
// as an empty array.
func WriteJSON(out io.Writer, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

// YAML writes the snapshot and returns the file path.
func (w Writer) YAML(s model.Snapshot) (string, error) {
	name := fmt.Sprintf("validation_results_%s.yaml", s.CreatedAt.Format(FileTimestamp))
	return w.create(name, func(f io.Writer) error { return WriteYAML(f, s) })
}

// PDF renders the snapshot and returns the file path.
func (w Writer) PDF(s model.Snapshot) (string, error) {
	name := fmt.Sprintf("chatbot_validation_report_%s.pdf", s.CreatedAt.Format(FileTimestamp))
	return w.create(name, func(f io.Writer) error { return WritePDF(f, s) })
}

func (w Writer) create(name string, write func(io.Writer) error) (path string, err error) {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path = filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
			path = ""
		}
	}()
	if err := write(f); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
