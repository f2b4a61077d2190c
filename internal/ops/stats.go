package ops

import (
	"errors"
	"slices"
	"strings"

	"github.com/altinukshini/truelies-tui/internal/model"
)

// ErrNoRows is returned when statistics are requested over no rows.
var ErrNoRows = errors.New("no rows")

// HistogramBuckets is the number of equal-width score buckets in [0, 1].
const HistogramBuckets = 10

type Stats struct {
	Count  int
	Mean   float64
	Min    float64
	Max    float64
	Median float64

	Passed   int
	Failed   int
	PassRate float64

	Grades    map[model.Grade]int
	Histogram [HistogramBuckets]int

	// PassThreshold is the score used for rows whose status names
	// neither outcome.
	PassThreshold float64
}

// ComputeStats summarizes the scores of rows. Median is the element at
// index n/2 of the ascending scores; even counts are not averaged.
// passThreshold classifies rows whose status label is inconclusive.
func ComputeStats(rows []model.Row, passThreshold float64) (Stats, error) {
	if len(rows) == 0 {
		return Stats{}, ErrNoRows
	}
	scores := make([]float64, len(rows))
	st := Stats{
		Count:         len(rows),
		Grades:        make(map[model.Grade]int, len(model.Grades)),
		PassThreshold: passThreshold,
	}
	var sum float64
	for i, r := range rows {
		scores[i] = r.Score
		sum += r.Score
		st.Grades[model.GradeFor(r.Score)]++
		st.Histogram[bucket(r.Score)]++
		if Passed(r, passThreshold) {
			st.Passed++
		} else {
			st.Failed++
		}
	}
	slices.Sort(scores)
	st.Mean = sum / float64(len(rows))
	st.Min = scores[0]
	st.Max = scores[len(scores)-1]
	st.Median = scores[len(scores)/2]
	st.PassRate = float64(st.Passed) / float64(len(rows))
	return st, nil
}

// Passed classifies a row by its status label, falling back to comparing
// the score with passThreshold when the label names neither outcome.
func Passed(r model.Row, passThreshold float64) bool {
	s := strings.ToLower(r.Status)
	switch {
	case strings.Contains(s, "pass") || strings.Contains(s, "✅"):
		return true
	case strings.Contains(s, "fail") || strings.Contains(s, "❌"):
		return false
	}
	return r.Score >= passThreshold
}

func bucket(score float64) int {
	b := int(score * HistogramBuckets)
	switch {
	case b < 0:
		return 0
	case b >= HistogramBuckets:
		return HistogramBuckets - 1
	}
	return b
}
