package tui

import (
	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ops"
	"github.com/altinukshini/truelies-tui/internal/report"
)

// screen records what the viewer asks the terminal to show. The App drains
// it after every viewer call and pushes the result into the Bubble Tea
// models, so the viewer never touches them directly.
type screen struct {
	order   []int
	visible map[int]bool
	counter string
	buttons []report.Button
	notices []report.Notice

	stats      *ops.Stats
	editFilter *ops.RangeFilter
	toggleAll  bool
}

var (
	_ report.Surface        = (*screen)(nil)
	_ report.StatsDisplay   = (*screen)(nil)
	_ report.FilterEditor   = (*screen)(nil)
	_ report.DetailsToggler = (*screen)(nil)
)

func newScreen(rows []model.Row) *screen {
	s := &screen{
		order:   ops.IDs(rows),
		visible: make(map[int]bool, len(rows)),
	}
	for _, r := range rows {
		s.visible[r.ID] = true
	}
	return s
}

func (s *screen) SetVisible(id int, on bool)            { s.visible[id] = on }
func (s *screen) Reorder(ids []int)                     { s.order = ids }
func (s *screen) InsertCounter(text string)             { s.counter = text }
func (s *screen) RenderButtons(buttons []report.Button) { s.buttons = buttons }
func (s *screen) Notify(n report.Notice)                { s.notices = append(s.notices, n) }
func (s *screen) ShowStats(st ops.Stats)                { s.stats = &st }
func (s *screen) EditFilters(f ops.RangeFilter)         { s.editFilter = &f }
func (s *screen) ToggleAllDetails()                     { s.toggleAll = !s.toggleAll }

// takeNotices returns and clears the queued notices.
func (s *screen) takeNotices() []report.Notice {
	n := s.notices
	s.notices = nil
	return n
}
