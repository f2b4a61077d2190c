package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is the exported form of a visible row.
type Record struct {
	ID     int     `json:"id" yaml:"id"`
	Score  float64 `json:"score" yaml:"score"`
	Status string  `json:"status" yaml:"status"`
	Facts  string  `json:"facts" yaml:"facts"`
}

// Snapshot is the visible part of the report at export time.
type Snapshot struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Total     int       `json:"total" yaml:"total"`
	Rows      []Row     `json:"rows" yaml:"rows"`
	Records   []Record  `json:"records" yaml:"records"`
}

// RecordsFor numbers rows in the order given, starting at 1.
func RecordsFor(rows []Row) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = Record{
			ID:     i + 1,
			Score:  r.Score,
			Status: r.Status,
			Facts:  r.Facts,
		}
	}
	return out
}

// NewSnapshot captures rows under a fresh id.
func NewSnapshot(title string, rows []Row, total int, now time.Time) Snapshot {
	return Snapshot{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: now,
		Total:     total,
		Rows:      rows,
		Records:   RecordsFor(rows),
	}
}
