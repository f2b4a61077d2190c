// Package printer is a headless report.Surface that prints the visible rows
// as a table for scripts and pipes.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/mattn/go-runewidth"

	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ops"
	"github.com/altinukshini/truelies-tui/internal/report"
)

// testNameWidth bounds the test name column on terminals.
const testNameWidth = 48

type Surface struct {
	rows    map[int]model.Row
	order   []int
	visible map[int]bool
	counter string
	buttons []report.Button
	notices []report.Notice
	stats   *ops.Stats
}

// New returns a surface that knows rows in their loaded order.
func New(rows []model.Row) *Surface {
	s := &Surface{
		rows:    make(map[int]model.Row, len(rows)),
		order:   ops.IDs(rows),
		visible: make(map[int]bool, len(rows)),
	}
	for _, r := range rows {
		s.rows[r.ID] = r
		s.visible[r.ID] = true
	}
	return s
}

func (s *Surface) SetVisible(id int, on bool)            { s.visible[id] = on }
func (s *Surface) Reorder(ids []int)                     { s.order = ids }
func (s *Surface) InsertCounter(text string)             { s.counter = text }
func (s *Surface) RenderButtons(buttons []report.Button) { s.buttons = buttons }
func (s *Surface) Notify(n report.Notice)                { s.notices = append(s.notices, n) }
func (s *Surface) ShowStats(st ops.Stats)                { s.stats = &st }

func (s *Surface) Counter() string { return s.counter }

func (s *Surface) Notices() []report.Notice { return s.notices }

// Render prints the visible rows. On a terminal the table is fitted to
// width and long test names are truncated.
func (s *Surface) Render(w io.Writer, isTTY bool, width int) error {
	tp := tableprinter.New(w, isTTY, width)
	tp.AddHeader([]string{"#", "TEST", "STATUS", "SCORE", "DATE", "FACTS"})
	for _, id := range s.order {
		if !s.visible[id] {
			continue
		}
		r := s.rows[id]
		name := r.TestName
		if isTTY {
			name = runewidth.Truncate(name, testNameWidth, "…")
		}
		tp.AddField(fmt.Sprint(r.ID))
		tp.AddField(name)
		tp.AddField(r.Status)
		tp.AddField(r.ScoreLabel())
		tp.AddField(r.Date)
		tp.AddField(r.Facts)
		tp.EndRow()
	}
	if err := tp.Render(); err != nil {
		return err
	}
	if s.counter != "" {
		_, err := fmt.Fprintln(w, s.counter)
		return err
	}
	return nil
}

// RenderStats prints the last statistics shown on the surface.
func (s *Surface) RenderStats(w io.Writer, isTTY bool, width int) error {
	if s.stats == nil {
		return fmt.Errorf("no statistics computed: %w", ops.ErrNoRows)
	}
	st := *s.stats
	tp := tableprinter.New(w, isTTY, width)
	tp.AddHeader([]string{"METRIC", "VALUE"})
	add := func(k, v string) {
		tp.AddField(k)
		tp.AddField(v)
		tp.EndRow()
	}
	add("Tests", fmt.Sprint(st.Count))
	add("Average", fmt.Sprintf("%.3f", st.Mean))
	add("Min", fmt.Sprintf("%.3f", st.Min))
	add("Max", fmt.Sprintf("%.3f", st.Max))
	add("Median", fmt.Sprintf("%.3f", st.Median))
	add("Passed", fmt.Sprint(st.Passed))
	add("Failed", fmt.Sprint(st.Failed))
	add("Pass rate", fmt.Sprintf("%.1f%%", st.PassRate*100))
	for _, g := range model.Grades {
		add("Grade "+string(g), fmt.Sprint(st.Grades[g]))
	}
	for i, n := range st.Histogram {
		lo := float64(i) / ops.HistogramBuckets
		add(fmt.Sprintf("%.1f-%.1f", lo, lo+1.0/ops.HistogramBuckets), strings.Repeat("#", n))
	}
	return tp.Render()
}

// NoticeLines renders collected notices, oldest first.
func (s *Surface) NoticeLines() []string {
	out := make([]string, len(s.notices))
	for i, n := range s.notices {
		out[i] = fmt.Sprintf("%s: %s", n.Kind, n.Text)
	}
	return out
}
