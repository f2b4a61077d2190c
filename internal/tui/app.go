package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/truelies-tui/internal/config"
	"github.com/altinukshini/truelies-tui/internal/debounce"
	"github.com/altinukshini/truelies-tui/internal/export"
	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ops"
	"github.com/altinukshini/truelies-tui/internal/report"
	"github.com/altinukshini/truelies-tui/internal/search"
	"github.com/altinukshini/truelies-tui/internal/source"
	"github.com/altinukshini/truelies-tui/internal/tui/confirm"
	"github.com/altinukshini/truelies-tui/internal/tui/dashboard"
	"github.com/altinukshini/truelies-tui/internal/tui/details"
	"github.com/altinukshini/truelies-tui/internal/tui/filteroverlay"
	"github.com/altinukshini/truelies-tui/internal/tui/results"
	"github.com/altinukshini/truelies-tui/internal/tui/searchbar"
	"github.com/altinukshini/truelies-tui/internal/ui"
)

// noticeTTL is how long a toast stays in the status bar.
const noticeTTL = 3 * time.Second

type Pane int

const (
	PaneResults Pane = iota
	PaneDetails
)

var exportFormats = map[report.Action]export.Format{
	report.ActionExportJSON: export.FormatJSON,
	report.ActionExportYAML: export.FormatYAML,
	report.ActionExportPDF:  export.FormatPDF,
}

type toast struct {
	notice report.Notice
	seq    int
}

type App struct {
	cfg    config.Config
	path   string
	log    *slog.Logger
	engine *search.Engine

	viewer *report.Viewer
	screen *screen

	// Typing schedules a debounce.Msg; only the latest one runs a search.
	debouncer *debounce.Debouncer[string]

	// Views
	resultsView   results.Model
	detailsView   details.Model
	searchBar     searchbar.Model
	dashboardView dashboard.Model
	confirmDialog confirm.Model
	filterOverlay filteroverlay.Model

	// State
	focusedPane Pane
	width       int
	height      int
	status      string
	loading     bool
	exporting   bool
	toast       *toast
	toastSeq    int
	showHelp    bool
}

func NewApp(cfg config.Config, path string, logger *slog.Logger) App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return App{
		cfg:           cfg,
		path:          path,
		log:           logger,
		engine:        search.New(),
		debouncer:     debounce.New[string](cfg.Search.Debounce),
		resultsView:   results.New(),
		detailsView:   details.New(),
		searchBar:     searchbar.New(),
		dashboardView: dashboard.New(),
		loading:       true,
		status:        "Loading report...",
	}
}

func (a App) Init() tea.Cmd {
	return a.loadReport()
}

func (a App) loadReport() tea.Cmd {
	path := a.path
	threshold := a.cfg.Grading.PassThreshold
	opts := source.Options{PassThreshold: &threshold, Logger: a.log}
	return func() tea.Msg {
		rows, err := source.Load(context.Background(), path, opts)
		return ui.ReportLoadedMsg{Path: path, Rows: rows, Err: err}
	}
}

func (a App) exporter() export.Writer {
	return export.Writer{
		Dir:      a.cfg.Export.Dir,
		JSONName: a.cfg.Export.JSONName,
		Title:    a.cfg.Export.Title,
	}
}

func (a App) title() string {
	if a.cfg.Export.Title != "" {
		return a.cfg.Export.Title
	}
	return export.DefaultTitle
}

func (a App) startExport(format export.Format) tea.Cmd {
	if a.viewer == nil {
		return nil
	}
	job, n := a.viewer.ExportJob(format)
	return func() tea.Msg {
		path, err := job()
		return ui.ExportDoneMsg{Format: format, Rows: n, Path: path, Err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle confirm dialog result (arrives AFTER dialog deactivates itself)
	if result, ok := msg.(confirm.ResultMsg); ok {
		if !result.Confirmed {
			return &a, nil
		}
		format, ok := exportFormats[result.Action]
		if !ok {
			return &a, nil
		}
		a.exporting = true
		a.status = fmt.Sprintf("Exporting %s...", strings.ToUpper(string(format)))
		return &a, a.startExport(format)
	}

	// Handle confirmation dialog input (key events while dialog is showing)
	if a.confirmDialog.IsActive() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			a.confirmDialog, cmd = a.confirmDialog.Update(msg)
			return &a, cmd
		}
	}

	// Handle filter overlay result
	if result, ok := msg.(filteroverlay.ResultMsg); ok {
		if result.Applied && a.viewer != nil {
			if err := a.viewer.FilterRangeInput(result.Input); err == nil {
				a.searchBar.SetQuery("")
			}
			cmds = append(cmds, a.sync())
		}
		return &a, tea.Batch(cmds...)
	}

	// Handle filter overlay input (key events while overlay is showing)
	if a.filterOverlay.IsActive() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			a.filterOverlay, cmd = a.filterOverlay.Update(msg)
			return &a, cmd
		}
	}

	if a.dashboardView.IsActive() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			a.dashboardView, cmd = a.dashboardView.Update(msg)
			return &a, cmd
		}
	}

	if a.showHelp {
		if _, ok := msg.(tea.KeyMsg); ok {
			a.showHelp = false
			return &a, nil
		}
	}

	// Typing in the search bar feeds the debouncer.
	if a.searchBar.IsActive() {
		if _, ok := msg.(tea.KeyMsg); ok {
			before := a.searchBar.Query()
			var cmd tea.Cmd
			a.searchBar, cmd = a.searchBar.Update(msg)
			if q := a.searchBar.Query(); q != before {
				cmd = tea.Batch(cmd, a.debouncer.Trigger(q))
			}
			return &a, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()

	case ui.ReportLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.log.Error("load report", "path", msg.Path, "err", msg.Err)
			a.status = fmt.Sprintf("Error: %v", msg.Err)
			break
		}
		a.screen = newScreen(msg.Rows)
		threshold := a.cfg.Grading.PassThreshold
		a.viewer = report.New(msg.Rows, a.screen, report.Options{
			Engine:        a.engine,
			Exporter:      a.exporter(),
			StatsScope:    report.StatsScope(a.cfg.Stats.Scope),
			PassThreshold: &threshold,
			Logger:        a.log,
		})
		if q := a.searchBar.Query(); q != "" {
			a.viewer.Search(q)
		}
		a.status = ""
		cmds = append(cmds, a.sync())

	case debounce.Msg[string]:
		if q, ok := a.debouncer.Accept(msg); ok && a.viewer != nil {
			a.viewer.Search(q)
			cmds = append(cmds, a.sync())
		}

	case searchbar.SubmitMsg:
		a.debouncer.Stop()
		if a.viewer != nil {
			a.viewer.Search(msg.Query)
			cmds = append(cmds, a.sync())
		}

	case ui.ExportDoneMsg:
		a.exporting = false
		a.status = ""
		if a.viewer != nil {
			a.viewer.ExportDone(msg.Format, msg.Rows, msg.Path, msg.Err)
			cmds = append(cmds, a.sync())
		}

	case ui.NoticeExpiredMsg:
		if a.toast != nil && a.toast.seq == msg.Seq {
			a.toast = nil
		}

	case tea.KeyMsg:
		cmds = append(cmds, a.handleKey(msg))
	}

	return &a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, ui.Keys.Quit):
		a.debouncer.Stop()
		return tea.Quit
	case key.Matches(msg, ui.Keys.Help):
		a.showHelp = true
		return nil
	case key.Matches(msg, ui.Keys.Refresh):
		a.loading = true
		a.status = "Reloading report..."
		return a.loadReport()
	}

	if a.viewer == nil {
		return nil
	}

	switch {
	case key.Matches(msg, ui.Keys.Search):
		a.focusedPane = PaneResults
		return a.searchBar.Activate()
	case key.Matches(msg, ui.Keys.Enter):
		a.resultsView.ToggleSelected()
		a.refreshDetails()
		return nil
	case key.Matches(msg, ui.Keys.Tab):
		if a.focusedPane == PaneResults && a.resultsView.ShowDetails() {
			a.focusedPane = PaneDetails
		} else {
			a.focusedPane = PaneResults
		}
		return nil
	case key.Matches(msg, ui.Keys.Back):
		if a.focusedPane == PaneDetails {
			a.focusedPane = PaneResults
			return nil
		}
		if a.viewer.Query() != "" || !a.viewer.Filter().IsZero() || a.searchBar.Query() != "" {
			a.debouncer.Stop()
			a.searchBar.SetQuery("")
			a.viewer.ShowAll()
			return a.sync()
		}
		return nil
	}

	if b, ok := report.ButtonForKey(msg.String()); ok {
		return a.runAction(b)
	}

	var cmd tea.Cmd
	if a.focusedPane == PaneDetails {
		a.detailsView, cmd = a.detailsView.Update(msg)
		return cmd
	}
	a.resultsView, cmd = a.resultsView.Update(msg)
	a.refreshDetails()
	return cmd
}

func (a *App) runAction(b report.Button) tea.Cmd {
	if format, ok := exportFormats[b.Action]; ok {
		if a.exporting {
			return nil
		}
		if b.Action == report.ActionExportPDF {
			visible, _ := a.viewer.Counts()
			a.confirmDialog = confirm.New(
				"Export PDF",
				fmt.Sprintf("Write a PDF report of %d results to %s?", visible, a.exportDir()),
				b.Action,
			)
			return nil
		}
		a.exporting = true
		a.status = fmt.Sprintf("Exporting %s...", strings.ToUpper(string(format)))
		return a.startExport(format)
	}

	switch b.Action {
	case report.ActionSuccessOnly, report.ActionFailuresOnly, report.ActionShowAll:
		a.debouncer.Stop()
		a.searchBar.SetQuery("")
	}
	if err := a.viewer.Do(b.Action); err != nil && !errors.Is(err, ops.ErrNoRows) {
		a.log.Error("action failed", "action", b.Action.String(), "err", err)
		a.status = fmt.Sprintf("Error: %v", err)
	}
	return a.sync()
}

func (a App) exportDir() string {
	if a.cfg.Export.Dir == "" {
		return "."
	}
	return a.cfg.Export.Dir
}

// sync pushes what the viewer drew on the screen into the views and
// returns the command that expires the newest notice.
func (a *App) sync() tea.Cmd {
	s := a.screen
	if s == nil {
		return nil
	}

	rows := make([]model.Row, 0, len(s.order))
	for _, id := range s.order {
		if !s.visible[id] {
			continue
		}
		if r, ok := a.viewer.Row(id); ok {
			rows = append(rows, r)
		}
	}
	a.resultsView.SetRows(rows)

	if s.toggleAll {
		s.toggleAll = false
		a.resultsView.ToggleAll()
	}
	if s.stats != nil {
		a.dashboardView.Show(*s.stats, a.cfg.Stats.Scope)
		s.stats = nil
	}
	if s.editFilter != nil {
		a.filterOverlay = filteroverlay.New(*s.editFilter)
		a.filterOverlay.SetSize(a.width, a.contentHeight()+2)
		s.editFilter = nil
	}
	a.refreshDetails()

	notices := s.takeNotices()
	if len(notices) == 0 {
		return nil
	}
	for _, n := range notices {
		a.log.Debug("notice", "kind", n.Kind.String(), "text", n.Text)
	}
	a.toastSeq++
	a.toast = &toast{notice: notices[len(notices)-1], seq: a.toastSeq}
	seq := a.toastSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return ui.NoticeExpiredMsg{Seq: seq}
	})
}

func (a *App) refreshDetails() {
	if !a.resultsView.ShowDetails() {
		a.detailsView.SetRow(nil)
		if a.focusedPane == PaneDetails {
			a.focusedPane = PaneResults
		}
		a.propagateSize()
		return
	}
	r, _ := a.resultsView.Selected()
	a.detailsView.SetRow(&r)
	a.propagateSize()
}

func (a App) contentHeight() int {
	// header(1) + toolbar(1) + search(1) + status(1) + pane border(2)
	h := a.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

func (a App) splitWidths() (left, right int) {
	if !a.resultsView.ShowDetails() {
		return a.width - 2, 0
	}
	left = a.width * 60 / 100
	right = a.width - left - 4
	if right < 1 {
		right = 1
	}
	return left, right
}

func (a *App) propagateSize() {
	if a.width == 0 || a.height == 0 {
		return
	}
	contentH := a.contentHeight()
	leftW, rightW := a.splitWidths()

	a.resultsView, _ = a.resultsView.Update(
		tea.WindowSizeMsg{Width: leftW, Height: contentH})
	if rightW > 0 {
		a.detailsView, _ = a.detailsView.Update(
			tea.WindowSizeMsg{Width: rightW, Height: contentH})
	}
	a.searchBar, _ = a.searchBar.Update(
		tea.WindowSizeMsg{Width: a.width, Height: 1})
	a.dashboardView, _ = a.dashboardView.Update(
		tea.WindowSizeMsg{Width: a.width - 4, Height: contentH})
	a.filterOverlay.SetSize(a.width, contentH+2)
}

// --- View ---

func (a App) View() string {
	visible, total := 0, 0
	if a.viewer != nil {
		visible, total = a.viewer.Counts()
	}
	header := RenderHeader(a.title(), a.path, visible, total, a.width)
	buttons := report.Buttons()
	if a.screen != nil && len(a.screen.buttons) > 0 {
		buttons = a.screen.buttons
	}
	toolbar := RenderToolbar(buttons, a.width)
	bar := a.searchBar.View()

	var content string
	switch {
	case a.showHelp:
		content = a.renderHelp()
	case a.confirmDialog.IsActive():
		content = lipgloss.Place(a.width, a.contentHeight()+2,
			lipgloss.Center, lipgloss.Center, a.confirmDialog.View())
	case a.filterOverlay.IsActive():
		content = a.filterOverlay.View()
	case a.dashboardView.IsActive():
		style := ui.StylePaneFocused.Width(a.width - 2).Height(a.contentHeight())
		content = style.Render(a.dashboardView.View())
	case a.loading && a.viewer == nil:
		content = "\n  Loading report..."
	default:
		content = a.renderResultsLayout()
	}

	statusBar := RenderStatusBar(a.statusText(), a.contextHints(), a.width)

	// Hard clamp: ensure content never overflows the terminal.
	maxContentLines := a.height - 4
	if maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			lines = lines[:maxContentLines]
			content = strings.Join(lines, "\n")
		}
	}

	return header + "\n" + toolbar + "\n" + bar + "\n" + content + "\n" + statusBar
}

// statusText prefers a live toast, then explicit status, then the counter.
func (a App) statusText() string {
	if a.toast != nil {
		return ui.NoticeStyle(a.toast.notice.Kind.String()).Render(a.toast.notice.Text)
	}
	if a.status != "" {
		return ui.StyleMuted.Render(a.status)
	}
	if a.screen != nil && a.screen.counter != "" {
		return ui.StyleMuted.Render(a.screen.counter)
	}
	if a.viewer != nil {
		_, total := a.viewer.Counts()
		return ui.StyleMuted.Render(search.CounterText(total, total))
	}
	return ""
}

func (a App) contextHints() string {
	switch {
	case a.showHelp:
		return "any key: close"
	case a.confirmDialog.IsActive():
		return "y: export  n/esc: cancel  tab: switch"
	case a.filterOverlay.IsActive():
		return "j/k: field  enter: edit/cycle  a: apply  c: clear  esc: cancel"
	case a.dashboardView.IsActive():
		return "j/k: scroll  esc: close"
	case a.searchBar.IsActive():
		return "enter: search now  esc: done"
	case a.focusedPane == PaneDetails:
		return "j/k: scroll  tab/esc: results  ?: help"
	}
	legend := fmt.Sprintf("%s=pass %s=fail", ui.StatusIcon("pass"), ui.StatusIcon("fail"))
	pos := a.resultsView.Position()
	if pos != "" {
		pos += "  "
	}
	toggle := "D:expand all"
	if a.resultsView.ExpandedAll() {
		toggle = "D:collapse all"
	}
	return pos + legend + "  |  /:search  enter:details  " + toggle + "  esc:clear  ?:help  q:quit"
}

func (a App) renderResultsLayout() string {
	contentH := a.contentHeight()
	leftW, rightW := a.splitWidths()

	leftStyle := ui.StylePane.Width(leftW).Height(contentH)
	if a.focusedPane == PaneResults {
		leftStyle = ui.StylePaneFocused.Width(leftW).Height(contentH)
	}
	left := leftStyle.Render(a.resultsView.View())
	if rightW == 0 {
		return left
	}

	rightStyle := ui.StylePane.Width(rightW).Height(contentH)
	if a.focusedPane == PaneDetails {
		rightStyle = ui.StylePaneFocused.Width(rightW).Height(contentH)
	}
	right := rightStyle.Render(a.detailsView.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (a App) renderHelp() string {
	bold := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	row := func(k, d string) string {
		return "  " + keyStyle.Render(k) + desc.Render(d) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + bold.Render("  Navigation") + "\n\n")
	b.WriteString(row("j / k", "Move down / up"))
	b.WriteString(row("pgup / pgdn", "Page up / page down"))
	b.WriteString(row("g / G", "Top / bottom"))
	b.WriteString(row("enter", "Toggle details of the selected result"))
	b.WriteString(row("tab", "Switch between results and details"))
	b.WriteString(row("esc", "Clear search and filters"))
	b.WriteString(row("r", "Reload the report"))
	b.WriteString(row("q", "Quit"))

	b.WriteString("\n" + bold.Render("  Actions") + "\n\n")
	for _, btn := range report.Buttons() {
		b.WriteString(row(btn.Key, btn.Label))
	}

	b.WriteString("\n" + bold.Render("  Search") + "\n\n")
	b.WriteString(row("/", "Focus the search bar"))
	b.WriteString(row("score:0.8", "Score at least 0.8 (also score>, score<)"))
	b.WriteString(row("status:pass", "Status contains text (also date:, facts:)"))
	b.WriteString(row("keywords", strings.Join(search.Keywords(), ", ")))

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  Press any key to close") + "\n")

	style := ui.StylePaneFocused.Width(a.width - 2).Height(a.contentHeight())
	return style.Render(b.String())
}
