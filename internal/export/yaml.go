package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/altinukshini/truelies-tui/internal/model"
)

// WriteYAML encodes the snapshot with two-space indentation.
func WriteYAML(out io.Writer, s model.Snapshot) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(yamlSnapshot{
		ID:        s.ID.String(),
		Title:     s.Title,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Total:     s.Total,
		Visible:   len(s.Rows),
		Rows:      s.Rows,
	}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

type yamlSnapshot struct {
	ID        string      `yaml:"id"`
	Title     string      `yaml:"title"`
	CreatedAt string      `yaml:"created_at"`
	Total     int         `yaml:"total"`
	Visible   int         `yaml:"visible"`
	Rows      []model.Row `yaml:"rows"`
}
