package ui

import (
	"github.com/altinukshini/truelies-tui/internal/export"
	"github.com/altinukshini/truelies-tui/internal/model"
)

// Data loaded messages
type ReportLoadedMsg struct {
	Path string
	Rows []model.Row
	Err  error
}

type ExportDoneMsg struct {
	Format export.Format
	Rows   int
	Path   string
	Err    error
}

// NoticeExpiredMsg clears the toast with the given sequence number.
type NoticeExpiredMsg struct {
	Seq int
}
