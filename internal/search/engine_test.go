package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/truelies-tui/internal/model"
)

var fixedNow = time.Date(2024, 12, 3, 15, 0, 0, 0, time.UTC)

func sampleRows() []model.Row {
	return []model.Row{
		{ID: 1, TestName: "Excellent Customer Service", Status: "PASS A", Score: 1.0, Date: "2024-12-03T09:00:00", Facts: "3/3"},
		{ID: 2, TestName: "Good Technical Support", Status: "PASS B", Score: 0.8, Date: "2024-12-02T09:00:00", Facts: "4/4"},
		{ID: 3, TestName: "Average Billing Inquiry", Status: "FAIL C", Score: 0.7, Date: "2024-12-01T09:00:00", Facts: "2/3"},
		{ID: 4, TestName: "Failed Support Case", Status: "FAIL F", Score: 0.3, Date: "2024-11-30T09:00:00", Facts: "1/3"},
	}
}

func visibleIDs(res Result) []int {
	var ids []int
	for id := 1; id <= res.Total+10; id++ {
		if res.Visible[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func TestFilterEmptyQueryShowsAll(t *testing.T) {
	engine := NewWithClock(func() time.Time { return fixedNow })
	for _, q := range []string{"", "   "} {
		res := engine.Filter(q, sampleRows())
		assert.Equal(t, 4, res.VisibleCount)
		assert.Equal(t, 4, res.Total)
		assert.Equal(t, "Showing all 4 results", res.Counter())
	}
}

func TestFilterScoreAtLeastMatchesThreshold(t *testing.T) {
	engine := New()
	rows := sampleRows()
	for _, th := range []float64{0, 0.3, 0.5, 0.7, 0.8, 1.0, 1.1} {
		res := engine.Filter(fmt.Sprintf("score:%v", th), rows)
		for _, r := range rows {
			assert.Equal(t, r.Score >= th, res.Visible[r.ID], "threshold %v row %d", th, r.ID)
		}
	}
}

func TestFilterScoreAboveIsStrictSubset(t *testing.T) {
	engine := New()
	rows := sampleRows()
	above := engine.Filter("score>0.8", rows)
	atLeast := engine.Filter("score:0.8", rows)

	assert.Less(t, above.VisibleCount, atLeast.VisibleCount)
	for id := range above.Visible {
		assert.True(t, atLeast.Visible[id], "row %d visible for score> but not score:", id)
	}
	assert.False(t, above.Visible[2])
	assert.True(t, atLeast.Visible[2])
}

func TestFilterScoreReadsLeadingNumber(t *testing.T) {
	engine := New()
	tests := []struct {
		query string
		want  []int
	}{
		{"score:0.8 pass", []int{1, 2}},
		{"score>0.5x", []int{1, 2, 3}},
		{"score<0.9abc", []int{3, 4}},
		{"score:.75", []int{1, 2}},
		{"score:1e-1", []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		res := engine.Filter(tt.query, sampleRows())
		assert.Equal(t, tt.want, visibleIDs(res), tt.query)
	}
}

func TestFilterScoreBelow(t *testing.T) {
	res := New().Filter("score<0.75", sampleRows())
	assert.Equal(t, []int{3, 4}, visibleIDs(res))
}

func TestFilterNonNumericScoreMatchesNothing(t *testing.T) {
	engine := New()
	for _, q := range []string{"score:abc", "score>", "score<NaN", "score:.x"} {
		res := engine.Filter(q, sampleRows())
		assert.Zero(t, res.VisibleCount, q)
		assert.Equal(t, "Found 0 of 4 results", res.Counter(), q)
	}
}

func TestFilterTextualOperators(t *testing.T) {
	engine := New()
	tests := []struct {
		query string
		want  []int
	}{
		{"date:2024-12-0", []int{1, 2, 3}},
		{"date:2024-11", []int{4}},
		{"facts:/3", []int{1, 3, 4}},
		{"facts:4/4", []int{2}},
		{"status:pass", []int{1, 2}},
		{"status:FAIL", []int{3, 4}},
		{"Status: fail f", []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, visibleIDs(engine.Filter(tt.query, sampleRows())))
		})
	}
}

func TestFilterExcellentMatchesGradeA(t *testing.T) {
	rows := []model.Row{
		{ID: 1, TestName: "alpha", Status: "A", Score: 0.95},
		{ID: 2, TestName: "another failing case", Status: "F", Score: 0.2},
		{ID: 3, TestName: "beta", Status: "PASS a", Score: 0.91},
	}
	res := New().Filter("excellent", rows)
	assert.True(t, res.Visible[1])
	assert.True(t, res.Visible[3])
	assert.False(t, res.Visible[2])
}

func TestFilterKeywordsUseClock(t *testing.T) {
	engine := NewWithClock(func() time.Time { return fixedNow })
	assert.Equal(t, []int{1}, visibleIDs(engine.Filter("today", sampleRows())))
	assert.Equal(t, []int{2}, visibleIDs(engine.Filter("yesterday", sampleRows())))
}

func TestFilterKeywordFallsBackToText(t *testing.T) {
	engine := New()
	// "poor" matches no D grade, so the plain text fallback decides.
	rows := []model.Row{{ID: 1, TestName: "Poor Sales Follow-up", Status: "FAIL F", Score: 0.33}}
	res := engine.Filter("poor", rows)
	assert.Equal(t, 1, res.VisibleCount)

	res = engine.Filter("poor sales", rows)
	assert.Equal(t, 1, res.VisibleCount)

	res = engine.Filter("poor service", rows)
	assert.Zero(t, res.VisibleCount)
}

func TestFilterPassKeyword(t *testing.T) {
	res := New().Filter("pass", sampleRows())
	assert.Equal(t, []int{1, 2}, visibleIDs(res))
}

func TestFilterHighScoreKeyword(t *testing.T) {
	res := New().Filter("high score", sampleRows())
	assert.Equal(t, []int{2}, visibleIDs(res))
}

func TestFilterPlainTextIsCaseInsensitive(t *testing.T) {
	res := New().Filter("BILLING", sampleRows())
	assert.Equal(t, []int{3}, visibleIDs(res))
	assert.Equal(t, "Found 1 of 4 results", res.Counter())
}

func TestParseProducesTaggedQueries(t *testing.T) {
	tests := []struct {
		raw  string
		want Query
	}{
		{"", MatchAll{}},
		{"score:0.8", ScoreAtLeast{T: 0.8, OK: true}},
		{"score>0.5", ScoreAbove{T: 0.5, OK: true}},
		{"score< 0.2", ScoreBelow{T: 0.2, OK: true}},
		{"score:x", ScoreAtLeast{}},
		{"date:2024-12", DateContains{S: "2024-12"}},
		{"facts:3", FactsContains{S: "3"}},
		{"status:PASS", StatusContains{S: "pass"}},
		{"Hello World", Text{S: "hello world"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.raw), tt.raw)
	}
}

func TestSuggestOperatorTypos(t *testing.T) {
	assert.Equal(t, PrefixScoreAtLeast, Suggest("scroe:0.5"))
	assert.Equal(t, PrefixScoreAbove, Suggest("scor>0.5"))
	assert.Equal(t, PrefixStatus, Suggest("stauts:pass"))
	assert.Empty(t, Suggest("score:0.5"))
	assert.Empty(t, Suggest("customer service"))
	assert.Empty(t, Suggest("unrelated:thing"))

	_, isText := Parse("scroe:0.5").(Text)
	require.True(t, isText)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "score ≥ 0.8", Describe(Parse("score:0.8")))
	assert.Equal(t, "score > (not a number)", Describe(Parse("score>abc")))
	assert.Equal(t, `keyword "excellent" or text "excellent"`, Describe(Parse("Excellent")))
	assert.Equal(t, "all results", Describe(Parse("")))
}

func TestKeywordsOrder(t *testing.T) {
	kws := Keywords()
	require.Len(t, kws, 12)
	assert.Equal(t, "pass", kws[0])
	assert.Equal(t, "low score", kws[len(kws)-1])
}
