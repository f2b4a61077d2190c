package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/altinukshini/truelies-tui/internal/model"
)

const selectResults = `
SELECT test_name, status, score, date, facts_retained, total_facts
FROM results
ORDER BY rowid`

// readOnlyDSN builds a file URI for path. Characters such as ? and # in
// the path are escaped so they are not read as URI delimiters.
func readOnlyDSN(path string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(path),
		OmitHost: true,
		RawQuery: "mode=ro&_pragma=busy_timeout(5000)",
	}
	return u.String()
}

// openReadOnly opens a results database without ever writing to it.
func openReadOnly(path string) (*sql.DB, error) {
	return sql.Open("sqlite", readOnlyDSN(path))
}

func loadSQLite(ctx context.Context, path string, opts Options) ([]model.Row, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rs, err := db.QueryContext(ctx, selectResults)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rs.Close()

	var rows []model.Row
	for rs.Next() {
		var (
			name, status, date sql.NullString
			score              float64
			retained, total    int
		)
		if err := rs.Scan(&name, &status, &score, &date, &retained, &total); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		st := status.String
		if st == "" {
			st = model.DeriveStatus(score, score >= opts.threshold())
		}
		rows = append(rows, model.Row{
			TestName: name.String,
			Status:   st,
			Score:    score,
			Date:     date.String,
			Facts:    model.FormatFacts(retained, total),
		})
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return rows, nil
}
