package search

import (
	"strings"
	"time"

	"github.com/altinukshini/truelies-tui/internal/model"
)

type keywordField int

const (
	// fieldText matches the token as a substring of the row's full text.
	fieldText keywordField = iota
	// fieldGrade matches the token as a whole word of the status cell.
	fieldGrade
)

type keyword struct {
	phrase string
	field  keywordField
	token  func(now time.Time) string
}

func fixed(s string) func(time.Time) string {
	return func(time.Time) string { return s }
}

const isoDate = "2006-01-02"

// keywords is ordered; the first phrase contained in the query whose
// token matches the row wins.
var keywords = []keyword{
	{phrase: "pass", field: fieldText, token: fixed("pass")},
	{phrase: "fail", field: fieldText, token: fixed("fail")},
	{phrase: "excellent", field: fieldGrade, token: fixed("a")},
	{phrase: "good", field: fieldGrade, token: fixed("b")},
	{phrase: "average", field: fieldGrade, token: fixed("c")},
	{phrase: "poor", field: fieldGrade, token: fixed("d")},
	{phrase: "failing", field: fieldGrade, token: fixed("f")},
	{phrase: "today", field: fieldText, token: func(now time.Time) string {
		return now.UTC().Format(isoDate)
	}},
	{phrase: "yesterday", field: fieldText, token: func(now time.Time) string {
		return now.UTC().AddDate(0, 0, -1).Format(isoDate)
	}},
	{phrase: "this week", field: fieldText, token: fixed("week")},
	{phrase: "high score", field: fieldText, token: fixed("0.8")},
	{phrase: "low score", field: fieldText, token: fixed("0.3")},
}

// Keywords lists the recognized keyword phrases in evaluation order.
func Keywords() []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = k.phrase
	}
	return out
}

func keywordIn(q string) (string, bool) {
	for _, k := range keywords {
		if strings.Contains(q, k.phrase) {
			return k.phrase, true
		}
	}
	return "", false
}

func (k keyword) matches(r model.Row, fullText string, now time.Time) bool {
	token := k.token(now)
	switch k.field {
	case fieldGrade:
		return hasWord(strings.ToLower(r.Status), token)
	default:
		return strings.Contains(fullText, token)
	}
}

func hasWord(s, word string) bool {
	for _, f := range strings.FieldsFunc(s, isSeparator) {
		if f == word {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '-')
}
