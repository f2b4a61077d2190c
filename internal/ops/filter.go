package ops

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/altinukshini/truelies-tui/internal/model"
)

// ErrInvalidInput is returned when a filter bound cannot be parsed.
var ErrInvalidInput = errors.New("invalid input")

// StatusAll disables the status filter.
const StatusAll = "all"

// FilterStatus keeps rows whose status contains label, ignoring case.
// An empty label or "all" keeps every row.
func FilterStatus(rows []model.Row, label string) []model.Row {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == StatusAll {
		return rows
	}
	var matched []model.Row
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Status), label) {
			matched = append(matched, r)
		}
	}
	return matched
}

// RangeFilter narrows rows by column ranges. Nil bounds are open.
type RangeFilter struct {
	Status   string
	MinScore *float64
	MaxScore *float64
	Start    *time.Time
	End      *time.Time
	MinFacts *int
	MaxFacts *int
}

// IsZero reports whether the filter keeps every row.
func (f RangeFilter) IsZero() bool {
	status := strings.ToLower(strings.TrimSpace(f.Status))
	return (status == "" || status == StatusAll) &&
		f.MinScore == nil && f.MaxScore == nil &&
		f.Start == nil && f.End == nil &&
		f.MinFacts == nil && f.MaxFacts == nil
}

// Match reports whether r satisfies every bound of the filter.
func (f RangeFilter) Match(r model.Row) bool {
	if len(FilterStatus([]model.Row{r}, f.Status)) == 0 {
		return false
	}
	if f.MinScore != nil && r.Score < *f.MinScore {
		return false
	}
	if f.MaxScore != nil && r.Score > *f.MaxScore {
		return false
	}
	if f.Start != nil || f.End != nil {
		d, ok := r.ParsedDate()
		if !ok {
			return false
		}
		if f.Start != nil && d.Before(*f.Start) {
			return false
		}
		if f.End != nil && !d.Before(endOfDay(*f.End)) {
			return false
		}
	}
	if f.MinFacts != nil || f.MaxFacts != nil {
		n, ok := r.FactsRetained()
		if !ok {
			return false
		}
		if f.MinFacts != nil && n < *f.MinFacts {
			return false
		}
		if f.MaxFacts != nil && n > *f.MaxFacts {
			return false
		}
	}
	return true
}

// endOfDay is the first instant after the calendar day of t.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

// FilterRows returns the rows matching f, preserving order.
func FilterRows(rows []model.Row, f RangeFilter) []model.Row {
	var matched []model.Row
	for _, r := range rows {
		if f.Match(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// RangeInput holds the raw text of the advanced filter fields.
type RangeInput struct {
	Status   string
	MinScore string
	MaxScore string
	From     string
	To       string
	MinFacts string
	MaxFacts string
}

// ParseRange converts raw field text into a RangeFilter. Blank fields are
// open bounds.
func ParseRange(in RangeInput) (RangeFilter, error) {
	f := RangeFilter{Status: in.Status}
	var err error
	if f.MinScore, f.MaxScore, err = ParseScoreRange(in.MinScore, in.MaxScore); err != nil {
		return RangeFilter{}, err
	}
	if f.Start, f.End, err = ParseDateRange(in.From, in.To); err != nil {
		return RangeFilter{}, err
	}
	if f.MinFacts, f.MaxFacts, err = ParseFactsRange(in.MinFacts, in.MaxFacts); err != nil {
		return RangeFilter{}, err
	}
	return f, nil
}

// ParseScoreRange parses an inclusive score range.
func ParseScoreRange(lo, hi string) (*float64, *float64, error) {
	low, err := parseFloatBound("min score", lo)
	if err != nil {
		return nil, nil, err
	}
	high, err := parseFloatBound("max score", hi)
	if err != nil {
		return nil, nil, err
	}
	if low != nil && high != nil && *low > *high {
		return nil, nil, fmt.Errorf("score range %v > %v: %w", *low, *high, ErrInvalidInput)
	}
	return low, high, nil
}

// ParseDateRange parses a date range; the end date includes its whole day.
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	start, err := parseDateBound("from", from)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDateBound("to", to)
	if err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && !start.Before(endOfDay(*end)) {
		return nil, nil, fmt.Errorf("date range %s after %s: %w", from, to, ErrInvalidInput)
	}
	return start, end, nil
}

// ParseFactsRange parses an inclusive range over the retained facts count.
func ParseFactsRange(lo, hi string) (*int, *int, error) {
	low, err := parseIntBound("min facts", lo)
	if err != nil {
		return nil, nil, err
	}
	high, err := parseIntBound("max facts", hi)
	if err != nil {
		return nil, nil, err
	}
	if low != nil && high != nil && *low > *high {
		return nil, nil, fmt.Errorf("facts range %d > %d: %w", *low, *high, ErrInvalidInput)
	}
	return low, high, nil
}

func parseFloatBound(name, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return nil, fmt.Errorf("%s %q: %w", name, s, ErrInvalidInput)
	}
	return &v, nil
}

func parseIntBound(name, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s %q: %w", name, s, ErrInvalidInput)
	}
	return &v, nil
}

func parseDateBound(name, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := model.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, err, ErrInvalidInput)
	}
	return &t, nil
}
