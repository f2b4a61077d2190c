package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Detail is one labelled line in a row's expanded details.
type Detail struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Row is one validation test result as rendered in the report.
type Row struct {
	ID        int      `json:"id" yaml:"id"`
	TestName  string   `json:"test_name" yaml:"test_name"`
	Status    string   `json:"status" yaml:"status"`
	Score     float64  `json:"score" yaml:"score"`
	ScoreText string   `json:"-" yaml:"-"`
	Date      string   `json:"date" yaml:"date"`
	Facts     string   `json:"facts" yaml:"facts"`
	Details   []Detail `json:"details,omitempty" yaml:"details,omitempty"`
}

// ScoreLabel returns the score the way the report shows it.
func (r Row) ScoreLabel() string {
	if r.ScoreText != "" {
		return r.ScoreText
	}
	return strconv.FormatFloat(r.Score, 'f', 3, 64)
}

// FullText is the lowercased text of every visible cell, used by free-text search.
func (r Row) FullText() string {
	return lower.String(strings.Join([]string{
		r.TestName, r.Status, r.ScoreLabel(), r.Date, r.Facts,
	}, " "))
}

// FactsRetained parses the retained half of "<retained>/<total>".
func (r Row) FactsRetained() (int, bool) {
	head, _, _ := strings.Cut(r.Facts, "/")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return n, true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate parses the date formats the validation suite writes.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParsedDate returns the row date, or false when it cannot be parsed.
func (r Row) ParsedDate() (time.Time, bool) {
	t, err := ParseDate(r.Date)
	return t, err == nil
}

// FormatFacts renders a facts cell.
func FormatFacts(retained, total int) string {
	return fmt.Sprintf("%d/%d", retained, total)
}
