// Package report holds the viewer state over a loaded report and drives an
// injected Surface. Every filter and sort recomputes visibility from the
// full row set.
package report

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/altinukshini/truelies-tui/internal/export"
	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ops"
	"github.com/altinukshini/truelies-tui/internal/search"
)

// StatsScope selects the rows statistics are computed over.
type StatsScope string

const (
	ScopeAll     StatsScope = "all"
	ScopeVisible StatsScope = "visible"
)

// ParseStatsScope validates a scope name.
func ParseStatsScope(s string) (StatsScope, error) {
	switch sc := StatsScope(s); sc {
	case ScopeAll, ScopeVisible:
		return sc, nil
	case "":
		return ScopeAll, nil
	}
	return "", fmt.Errorf("unknown stats scope %q (use all or visible)", s)
}

// Exporter writes export files. export.Writer implements it.
type Exporter interface {
	JSON(records []model.Record) (string, error)
	YAML(s model.Snapshot) (string, error)
	PDF(s model.Snapshot) (string, error)
	Snapshot(rows []model.Row, total int) model.Snapshot
}

type Options struct {
	Engine     *search.Engine
	Exporter   Exporter
	StatsScope StatsScope

	// PassThreshold grades rows whose status is inconclusive in stats.
	// Nil means model.DefaultPassThreshold.
	PassThreshold *float64
	Logger        *slog.Logger
}

type Viewer struct {
	rows     []model.Row
	byID     map[int]model.Row
	order    []int
	visible  map[int]bool
	filter   ops.RangeFilter
	query    string
	surface  Surface
	engine   *search.Engine
	exporter Exporter
	scope    StatsScope
	passAt   float64
	log      *slog.Logger
	handlers map[Action]func() error
}

// New builds a viewer over rows and renders the initial state on surface.
func New(rows []model.Row, surface Surface, opts Options) *Viewer {
	v := &Viewer{
		rows:     slices.Clone(rows),
		byID:     make(map[int]model.Row, len(rows)),
		order:    ops.IDs(rows),
		visible:  make(map[int]bool, len(rows)),
		surface:  surface,
		engine:   opts.Engine,
		exporter: opts.Exporter,
		scope:    opts.StatsScope,
		passAt:   model.DefaultPassThreshold,
		log:      opts.Logger,
	}
	if opts.PassThreshold != nil {
		v.passAt = *opts.PassThreshold
	}
	if v.engine == nil {
		v.engine = search.New()
	}
	if v.exporter == nil {
		v.exporter = export.Writer{}
	}
	if v.scope == "" {
		v.scope = ScopeAll
	}
	if v.log == nil {
		v.log = slog.New(slog.DiscardHandler)
	}
	for _, r := range rows {
		v.byID[r.ID] = r
		v.visible[r.ID] = true
	}
	v.handlers = map[Action]func() error{
		ActionStats:           func() error { _, err := v.Stats(); return err },
		ActionSortScore:       func() error { v.SortByScore(); return nil },
		ActionSortDate:        func() error { v.SortByDate(); return nil },
		ActionAdvancedFilters: v.editFilters,
		ActionSuccessOnly:     func() error { v.FilterStatus("pass"); return nil },
		ActionFailuresOnly:    func() error { v.FilterStatus("fail"); return nil },
		ActionShowAll:         func() error { v.ShowAll(); return nil },
		ActionExportJSON:      func() error { _, err := v.Export(export.FormatJSON); return err },
		ActionExportPDF:       func() error { _, err := v.Export(export.FormatPDF); return err },
		ActionExportYAML:      func() error { _, err := v.Export(export.FormatYAML); return err },
		ActionToggleDetails:   v.toggleDetails,
	}
	surface.RenderButtons(Buttons())
	return v
}

// Do runs the handler bound to a toolbar action.
func (v *Viewer) Do(a Action) error {
	h, ok := v.handlers[a]
	if !ok {
		return fmt.Errorf("%s: %w", a, ErrUnknownAction)
	}
	return h()
}

// Rows returns every row in display order, hidden ones included.
func (v *Viewer) Rows() []model.Row {
	out := make([]model.Row, 0, len(v.order))
	for _, id := range v.order {
		out = append(out, v.byID[id])
	}
	return out
}

// VisibleRows returns the visible rows in display order.
func (v *Viewer) VisibleRows() []model.Row {
	var out []model.Row
	for _, id := range v.order {
		if v.visible[id] {
			out = append(out, v.byID[id])
		}
	}
	return out
}

// Row looks up a row by id.
func (v *Viewer) Row(id int) (model.Row, bool) {
	r, ok := v.byID[id]
	return r, ok
}

func (v *Viewer) IsVisible(id int) bool { return v.visible[id] }

func (v *Viewer) Query() string { return v.query }

func (v *Viewer) Filter() ops.RangeFilter { return v.filter }

// Counts returns the visible and total row counts.
func (v *Viewer) Counts() (visible, total int) {
	for _, ok := range v.visible {
		if ok {
			visible++
		}
	}
	return visible, len(v.rows)
}

// Search applies a query to every row and returns the outcome.
func (v *Viewer) Search(query string) search.Result {
	res := v.engine.Filter(query, v.rows)
	v.query = query
	v.filter = ops.RangeFilter{}
	v.apply(res.Visible)
	v.log.Debug("search evaluated", "query", query, "visible", res.VisibleCount, "total", res.Total)
	if hint := search.Suggest(query); hint != "" {
		v.surface.Notify(Notice{Kind: NoticeInfo, Text: fmt.Sprintf("Did you mean %q?", hint)})
	}
	return res
}

// FilterStatus shows rows whose status contains label; "all" shows every row.
func (v *Viewer) FilterStatus(label string) {
	v.filter = ops.RangeFilter{Status: label}
	v.query = ""
	v.applyRows(ops.FilterStatus(v.rows, label))
}

// FilterRange applies an advanced filter.
func (v *Viewer) FilterRange(f ops.RangeFilter) {
	v.filter = f
	v.query = ""
	v.applyRows(ops.FilterRows(v.rows, f))
}

// FilterRangeInput parses raw filter fields and applies them. Malformed
// input leaves visibility untouched and notifies the user.
func (v *Viewer) FilterRangeInput(in ops.RangeInput) error {
	f, err := ops.ParseRange(in)
	if err != nil {
		v.surface.Notify(Notice{Kind: NoticeError, Text: "Please enter valid values: " + err.Error()})
		return err
	}
	v.FilterRange(f)
	return nil
}

// ShowAll clears every filter.
func (v *Viewer) ShowAll() {
	v.filter = ops.RangeFilter{}
	v.query = ""
	v.applyRows(v.rows)
}

// SortByScore reorders every row by descending score.
func (v *Viewer) SortByScore() {
	v.reorder(ops.SortByScore(v.Rows()))
}

// SortByDate reorders every row newest first.
func (v *Viewer) SortByDate() {
	v.reorder(ops.SortByDate(v.Rows()))
}

// Stats computes statistics over the configured scope. With no rows in
// scope it notifies the user and returns ops.ErrNoRows.
func (v *Viewer) Stats() (ops.Stats, error) {
	rows := v.rows
	if v.scope == ScopeVisible {
		rows = v.VisibleRows()
	}
	st, err := ops.ComputeStats(rows, v.passAt)
	if err != nil {
		if errors.Is(err, ops.ErrNoRows) {
			v.surface.Notify(Notice{Kind: NoticeError, Text: "No results to analyze"})
		}
		return ops.Stats{}, err
	}
	if d, ok := v.surface.(StatsDisplay); ok {
		d.ShowStats(st)
	} else {
		v.surface.Notify(Notice{Kind: NoticeInfo, Text: StatsSummary(st)})
	}
	return st, nil
}

// StatsSummary is a one-line rendering of st.
func StatsSummary(st ops.Stats) string {
	return fmt.Sprintf("Average %.3f | Min %.3f | Max %.3f | Median %.3f | Tests %d",
		st.Mean, st.Min, st.Max, st.Median, st.Count)
}

// Export writes the visible rows in format and notifies the outcome.
func (v *Viewer) Export(format export.Format) (string, error) {
	job, n := v.ExportJob(format)
	path, err := job()
	v.ExportDone(format, n, path, err)
	return path, err
}

// ExportJob captures the visible rows now and returns a function that
// writes them. The function does not touch the viewer and may run on
// another goroutine.
func (v *Viewer) ExportJob(format export.Format) (func() (string, error), int) {
	rows := v.VisibleRows()
	total := len(v.rows)
	ex := v.exporter
	switch format {
	case export.FormatJSON:
		records := model.RecordsFor(rows)
		return func() (string, error) { return ex.JSON(records) }, len(rows)
	case export.FormatYAML:
		snap := ex.Snapshot(rows, total)
		return func() (string, error) { return ex.YAML(snap) }, len(rows)
	case export.FormatPDF:
		snap := ex.Snapshot(rows, total)
		return func() (string, error) { return ex.PDF(snap) }, len(rows)
	}
	return func() (string, error) {
		return "", fmt.Errorf("unknown export format %q", format)
	}, 0
}

// ExportDone reports the outcome of an export job to the surface.
func (v *Viewer) ExportDone(format export.Format, n int, path string, err error) {
	if err != nil {
		v.log.Error("export failed", "format", string(format), "err", err)
		v.surface.Notify(Notice{Kind: NoticeError, Text: fmt.Sprintf("Export failed: %v", err)})
		return
	}
	v.log.Info("export written", "format", string(format), "path", path, "rows", n)
	v.surface.Notify(Notice{Kind: NoticeSuccess, Text: fmt.Sprintf("Exported %d results to %s", n, path)})
}

func (v *Viewer) editFilters() error {
	e, ok := v.surface.(FilterEditor)
	if !ok {
		return fmt.Errorf("%s: %w", ActionAdvancedFilters, errors.ErrUnsupported)
	}
	e.EditFilters(v.filter)
	return nil
}

func (v *Viewer) toggleDetails() error {
	t, ok := v.surface.(DetailsToggler)
	if !ok {
		return fmt.Errorf("%s: %w", ActionToggleDetails, errors.ErrUnsupported)
	}
	t.ToggleAllDetails()
	return nil
}

func (v *Viewer) applyRows(rows []model.Row) {
	keep := make(map[int]bool, len(rows))
	for _, r := range rows {
		keep[r.ID] = true
	}
	v.apply(keep)
}

func (v *Viewer) apply(keep map[int]bool) {
	visible := 0
	for _, r := range v.rows {
		on := keep[r.ID]
		v.visible[r.ID] = on
		v.surface.SetVisible(r.ID, on)
		if on {
			visible++
		}
	}
	v.surface.InsertCounter(search.CounterText(visible, len(v.rows)))
}

func (v *Viewer) reorder(sorted []model.Row) {
	v.order = ops.IDs(sorted)
	v.surface.Reorder(slices.Clone(v.order))
}
