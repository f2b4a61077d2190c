package ops

import (
	"cmp"
	"slices"

	"github.com/altinukshini/truelies-tui/internal/model"
)

// SortByScore returns a copy of rows ordered by descending score. Ties keep
// their input order.
func SortByScore(rows []model.Row) []model.Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b model.Row) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// SortByDate returns a copy of rows ordered newest first. Rows whose date
// cannot be parsed go last, in input order.
func SortByDate(rows []model.Row) []model.Row {
	type keyed struct {
		row model.Row
		ok  bool
		at  int64
	}
	ks := make([]keyed, len(rows))
	for i, r := range rows {
		d, ok := r.ParsedDate()
		ks[i] = keyed{row: r, ok: ok}
		if ok {
			ks[i].at = d.UnixNano()
		}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case a.ok && !b.ok:
			return -1
		case !a.ok && b.ok:
			return 1
		case !a.ok && !b.ok:
			return 0
		}
		return cmp.Compare(b.at, a.at)
	})
	out := make([]model.Row, len(ks))
	for i, k := range ks {
		out[i] = k.row
	}
	return out
}

// IDs lists the row ids in order.
func IDs(rows []model.Row) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}
