package search

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Query is a parsed search string. Parse returns exactly one of the
// concrete types below; Engine matches them exhaustively.
type Query interface {
	query()
}

type (
	// MatchAll is the empty query.
	MatchAll struct{}

	// ScoreAtLeast is "score:<t>". OK is false when t was not a number.
	ScoreAtLeast struct {
		T  float64
		OK bool
	}

	// ScoreAbove is "score><t>".
	ScoreAbove struct {
		T  float64
		OK bool
	}

	// ScoreBelow is "score<<t>".
	ScoreBelow struct {
		T  float64
		OK bool
	}

	// DateContains is "date:<s>", a textual match on the date cell.
	DateContains struct{ S string }

	// FactsContains is "facts:<s>".
	FactsContains struct{ S string }

	// StatusContains is "status:<s>", matched case-insensitively.
	StatusContains struct{ S string }

	// Text is a free-text query. It goes through the keyword table first
	// and falls back to a plain substring match.
	Text struct{ S string }
)

func (MatchAll) query()       {}
func (ScoreAtLeast) query()   {}
func (ScoreAbove) query()     {}
func (ScoreBelow) query()     {}
func (DateContains) query()   {}
func (FactsContains) query()  {}
func (StatusContains) query() {}
func (Text) query()           {}

// Operator prefixes, in the order they are tried.
const (
	PrefixScoreAtLeast = "score:"
	PrefixScoreAbove   = "score>"
	PrefixScoreBelow   = "score<"
	PrefixDate         = "date:"
	PrefixFacts        = "facts:"
	PrefixStatus       = "status:"
)

var operatorPrefixes = []string{
	PrefixScoreAtLeast,
	PrefixScoreAbove,
	PrefixScoreBelow,
	PrefixDate,
	PrefixFacts,
	PrefixStatus,
}

// Parse turns a raw search string into a Query. It never fails: numbers
// that cannot be parsed produce a score query that matches nothing.
func Parse(raw string) Query {
	q := strings.TrimSpace(raw)
	if q == "" {
		return MatchAll{}
	}
	prefix, rest, ok := cutOperator(q)
	if !ok {
		return Text{S: strings.ToLower(q)}
	}
	switch prefix {
	case PrefixScoreAtLeast:
		t, ok := parseBound(rest)
		return ScoreAtLeast{T: t, OK: ok}
	case PrefixScoreAbove:
		t, ok := parseBound(rest)
		return ScoreAbove{T: t, OK: ok}
	case PrefixScoreBelow:
		t, ok := parseBound(rest)
		return ScoreBelow{T: t, OK: ok}
	case PrefixDate:
		return DateContains{S: rest}
	case PrefixFacts:
		return FactsContains{S: rest}
	default:
		return StatusContains{S: strings.ToLower(rest)}
	}
}

func cutOperator(q string) (prefix, rest string, ok bool) {
	lq := strings.ToLower(q)
	for _, p := range operatorPrefixes {
		if strings.HasPrefix(lq, p) {
			return p, strings.TrimSpace(q[len(p):]), true
		}
	}
	return "", "", false
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseBound reads the number at the start of s and ignores whatever
// follows it, so "0.8 pass" is 0.8.
func parseBound(s string) (float64, bool) {
	num := leadingFloat.FindString(strings.TrimSpace(s))
	if num == "" {
		return 0, false
	}
	t, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(t) {
		return 0, false
	}
	return t, true
}

// Describe renders a short label for the status bar.
func Describe(q Query) string {
	switch q := q.(type) {
	case MatchAll:
		return "all results"
	case ScoreAtLeast:
		return describeBound("score ≥", q.T, q.OK)
	case ScoreAbove:
		return describeBound("score >", q.T, q.OK)
	case ScoreBelow:
		return describeBound("score <", q.T, q.OK)
	case DateContains:
		return fmt.Sprintf("date contains %q", q.S)
	case FactsContains:
		return fmt.Sprintf("facts contain %q", q.S)
	case StatusContains:
		return fmt.Sprintf("status contains %q", q.S)
	case Text:
		if kw, ok := keywordIn(q.S); ok {
			return fmt.Sprintf("keyword %q or text %q", kw, q.S)
		}
		return fmt.Sprintf("text %q", q.S)
	}
	return ""
}

func describeBound(label string, t float64, ok bool) string {
	if !ok {
		return label + " (not a number)"
	}
	return fmt.Sprintf("%s %s", label, strconv.FormatFloat(t, 'f', -1, 64))
}
