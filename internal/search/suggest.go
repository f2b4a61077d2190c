package search

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestDistance = 2

// Suggest returns the operator prefix the user most likely meant when the
// query looks like a mistyped "key:value" or "key>value" operator. It
// returns "" for valid operators and ordinary text.
func Suggest(raw string) string {
	q := strings.ToLower(strings.TrimSpace(raw))
	if _, _, ok := cutOperator(q); ok {
		return ""
	}
	i := strings.IndexAny(q, ":<>")
	if i <= 0 {
		return ""
	}
	head := q[:i+1]
	best, bestDist := "", maxSuggestDistance+1
	for _, p := range operatorPrefixes {
		if p[len(p)-1] != head[len(head)-1] {
			continue
		}
		if d := levenshtein.ComputeDistance(head, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}
