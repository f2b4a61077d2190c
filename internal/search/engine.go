package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/altinukshini/truelies-tui/internal/model"
)

// Result is the visibility partition produced by one search.
type Result struct {
	Query        Query
	Visible      map[int]bool // row ID -> visible
	VisibleCount int
	Total        int
}

// Counter is the text shown next to the search box.
func (r Result) Counter() string {
	return CounterText(r.VisibleCount, r.Total)
}

type Engine struct {
	now func() time.Time
}

func New() *Engine {
	return &Engine{now: time.Now}
}

// NewWithClock builds an engine whose "today"/"yesterday" keywords use now.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Filter decides which rows stay visible for the raw query string.
func (e *Engine) Filter(raw string, rows []model.Row) Result {
	return e.FilterQuery(Parse(raw), rows)
}

// FilterQuery evaluates an already parsed query.
func (e *Engine) FilterQuery(q Query, rows []model.Row) Result {
	res := Result{
		Query:   q,
		Visible: make(map[int]bool, len(rows)),
		Total:   len(rows),
	}
	matcher := e.buildMatcher(q)
	for _, r := range rows {
		if matcher(r) {
			res.Visible[r.ID] = true
			res.VisibleCount++
		}
	}
	return res
}

// Match reports whether a single row satisfies the raw query.
func (e *Engine) Match(raw string, r model.Row) bool {
	return e.buildMatcher(Parse(raw))(r)
}

func (e *Engine) buildMatcher(q Query) func(model.Row) bool {
	switch q := q.(type) {
	case MatchAll:
		return func(model.Row) bool { return true }
	case ScoreAtLeast:
		return func(r model.Row) bool { return q.OK && r.Score >= q.T }
	case ScoreAbove:
		return func(r model.Row) bool { return q.OK && r.Score > q.T }
	case ScoreBelow:
		return func(r model.Row) bool { return q.OK && r.Score < q.T }
	case DateContains:
		return func(r model.Row) bool { return strings.Contains(r.Date, q.S) }
	case FactsContains:
		return func(r model.Row) bool { return strings.Contains(r.Facts, q.S) }
	case StatusContains:
		return func(r model.Row) bool { return strings.Contains(strings.ToLower(r.Status), q.S) }
	case Text:
		now := e.now()
		var candidates []keyword
		for _, k := range keywords {
			if strings.Contains(q.S, k.phrase) {
				candidates = append(candidates, k)
			}
		}
		return func(r model.Row) bool {
			text := r.FullText()
			for _, k := range candidates {
				if k.matches(r, text, now) {
					return true
				}
			}
			return strings.Contains(text, q.S)
		}
	}
	return func(model.Row) bool { return false }
}

// CounterText renders the visible/total counter.
func CounterText(visible, total int) string {
	if visible == total {
		return fmt.Sprintf("Showing all %d results", total)
	}
	return fmt.Sprintf("Found %d of %d results", visible, total)
}
