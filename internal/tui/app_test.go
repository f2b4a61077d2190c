package tui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/truelies-tui/internal/config"
	"github.com/altinukshini/truelies-tui/internal/debounce"
	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ops"
	"github.com/altinukshini/truelies-tui/internal/report"
	"github.com/altinukshini/truelies-tui/internal/tui/confirm"
	"github.com/altinukshini/truelies-tui/internal/tui/filteroverlay"
	"github.com/altinukshini/truelies-tui/internal/tui/searchbar"
	"github.com/altinukshini/truelies-tui/internal/ui"
)

func testRows() []model.Row {
	return []model.Row{
		{ID: 1, TestName: "Excellent Customer Service", Status: "PASS A", Score: 0.95, Date: "2024-12-03T09:00:00", Facts: "3/3"},
		{ID: 2, TestName: "Billing Inquiry", Status: "FAIL D", Score: 0.62, Date: "2024-12-02T09:00:00", Facts: "2/3"},
		{ID: 3, TestName: "Technical Support", Status: "PASS B", Score: 0.81, Date: "2024-12-01T09:00:00", Facts: "4/5"},
		{ID: 4, TestName: "Returns Policy", Status: "FAIL F", Score: 0.2, Date: "2024-11-30T09:00:00", Facts: "0/4"},
	}
}

func newTestApp(t *testing.T) App {
	t.Helper()
	cfg := config.Config{
		Stats:  config.StatsConfig{Scope: "all"},
		Export: config.ExportConfig{Dir: t.TempDir()},
	}
	app := NewApp(cfg, "report.json", nil)

	m, _ := app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	app = *m.(*App)
	m, _ = app.Update(ui.ReportLoadedMsg{Path: "report.json", Rows: testRows()})
	return *m.(*App)
}

func press(t *testing.T, app App, s string) (App, tea.Cmd) {
	t.Helper()
	var k tea.KeyMsg
	switch s {
	case "esc":
		k = tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		k = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		k = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	m, cmd := app.Update(k)
	return *m.(*App), cmd
}

func shownIDs(app App) []int {
	return ops.IDs(app.resultsView.Rows())
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAppLoadsReport(t *testing.T) {
	app := newTestApp(t)

	if got := shownIDs(app); !equalIDs(got, []int{1, 2, 3, 4}) {
		t.Fatalf("expected all rows shown, got %v", got)
	}
	view := app.View()
	for _, want := range []string{"Billing Inquiry", "4/4 results", "Statistics", "Showing all 4 results"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestAppLoadErrorShowsInStatus(t *testing.T) {
	app := NewApp(config.Config{}, "missing.json", nil)
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = *m.(*App)
	m, _ = app.Update(ui.ReportLoadedMsg{Path: "missing.json", Err: os.ErrNotExist})
	app = *m.(*App)

	if !strings.Contains(app.View(), "Error:") {
		t.Error("load error should reach the status bar")
	}
	// Actions are ignored until a report is loaded.
	app, _ = press(t, app, "x")
	if app.viewer != nil {
		t.Error("no viewer expected after a failed load")
	}
}

func TestAppFailuresOnlyAndShowAll(t *testing.T) {
	app := newTestApp(t)

	app, _ = press(t, app, "x")
	if got := shownIDs(app); !equalIDs(got, []int{2, 4}) {
		t.Fatalf("failures only: got %v", got)
	}
	if app.screen.counter != "Found 2 of 4 results" {
		t.Errorf("unexpected counter %q", app.screen.counter)
	}

	app, _ = press(t, app, "a")
	if got := shownIDs(app); !equalIDs(got, []int{1, 2, 3, 4}) {
		t.Fatalf("show all: got %v", got)
	}
}

func TestAppSortByScore(t *testing.T) {
	app := newTestApp(t)
	app, _ = press(t, app, "S")
	if got := shownIDs(app); !equalIDs(got, []int{1, 3, 2, 4}) {
		t.Fatalf("sorted by score: got %v", got)
	}

	// Sorting survives a later filter.
	app, _ = press(t, app, "p")
	if got := shownIDs(app); !equalIDs(got, []int{1, 3}) {
		t.Fatalf("success only after sort: got %v", got)
	}
}

// debounced runs cmd, expanding batches, and returns the debounce
// messages it produces in order.
func debounced(cmd tea.Cmd) []debounce.Msg[string] {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []debounce.Msg[string]
		for _, c := range msg {
			out = append(out, debounced(c)...)
		}
		return out
	case debounce.Msg[string]:
		return []debounce.Msg[string]{msg}
	}
	return nil
}

func TestAppDebouncedSearchFilters(t *testing.T) {
	app := newTestApp(t)

	m, _ := app.Update(debounced(app.debouncer.Trigger("billing"))[0])
	app = *m.(*App)
	if got := shownIDs(app); !equalIDs(got, []int{2}) {
		t.Fatalf("search billing: got %v", got)
	}

	m, _ = app.Update(debounced(app.debouncer.Trigger("score:0.8"))[0])
	app = *m.(*App)
	if got := shownIDs(app); !equalIDs(got, []int{1, 3}) {
		t.Fatalf("search score:0.8: got %v", got)
	}
}

func TestAppTypingRunsOnlyLatestQuery(t *testing.T) {
	app := newTestApp(t)

	app, _ = press(t, app, "/")
	if !app.searchBar.IsActive() {
		t.Fatal("/ should focus the search bar")
	}
	var pending []debounce.Msg[string]
	for _, r := range "pass" {
		var cmd tea.Cmd
		app, cmd = press(t, app, string(r))
		pending = append(pending, debounced(cmd)...)
	}
	if len(pending) != 4 {
		t.Fatalf("expected one debounce message per key, got %d", len(pending))
	}
	// Typed keys must not trigger toolbar actions.
	if got := shownIDs(app); !equalIDs(got, []int{1, 2, 3, 4}) {
		t.Errorf("typing should not filter before the debounce fires, got %v", got)
	}

	for i, msg := range pending {
		m, _ := app.Update(msg)
		app = *m.(*App)
		if i < len(pending)-1 && len(shownIDs(app)) != 4 {
			t.Fatalf("stale query %q should be dropped", msg.Value)
		}
	}
	if got := shownIDs(app); !equalIDs(got, []int{1, 3}) {
		t.Errorf("expected rows matching \"pass\", got %v", got)
	}
}

func TestAppEnterSearchesImmediately(t *testing.T) {
	app := newTestApp(t)
	app, _ = press(t, app, "/")
	for _, r := range "fail" {
		app, _ = press(t, app, string(r))
	}
	app, cmd := press(t, app, "enter")
	if app.searchBar.IsActive() {
		t.Error("enter should leave the search bar")
	}
	msg, ok := cmd().(searchbar.SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	m, _ := app.Update(msg)
	app = *m.(*App)
	if got := shownIDs(app); !equalIDs(got, []int{2, 4}) {
		t.Fatalf("search fail: got %v", got)
	}

	// esc clears the search.
	app, _ = press(t, app, "esc")
	if got := shownIDs(app); len(got) != 4 {
		t.Errorf("esc should show every row, got %v", got)
	}
	if app.searchBar.Query() != "" {
		t.Error("esc should empty the search bar")
	}
}

func TestAppAdvancedFilters(t *testing.T) {
	app := newTestApp(t)

	app, _ = press(t, app, "f")
	if !app.filterOverlay.IsActive() {
		t.Fatal("f should open the filter overlay")
	}

	m, _ := app.Update(filteroverlay.ResultMsg{Applied: true, Input: ops.RangeInput{MinScore: "0.6", MaxScore: "0.9"}})
	app = *m.(*App)
	if got := shownIDs(app); !equalIDs(got, []int{2, 3}) {
		t.Fatalf("range filter: got %v", got)
	}

	m, _ = app.Update(filteroverlay.ResultMsg{Applied: true, Input: ops.RangeInput{MinScore: "abc"}})
	app = *m.(*App)
	if got := shownIDs(app); !equalIDs(got, []int{2, 3}) {
		t.Errorf("malformed input must leave visibility unchanged, got %v", got)
	}
	if app.toast == nil || app.toast.notice.Kind != report.NoticeError {
		t.Fatal("malformed input should raise an error toast")
	}
}

func TestAppStatsDashboard(t *testing.T) {
	app := newTestApp(t)

	app, _ = press(t, app, "s")
	if !app.dashboardView.IsActive() {
		t.Fatal("s should open the dashboard")
	}
	st := app.dashboardView.Stats()
	if st == nil || st.Count != 4 || st.Passed != 2 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if !strings.Contains(app.View(), "Score Distribution") {
		t.Error("dashboard should render the histogram")
	}

	app, _ = press(t, app, "esc")
	if app.dashboardView.IsActive() {
		t.Error("esc should close the dashboard")
	}
}

func TestAppPDFExportNeedsConfirmation(t *testing.T) {
	app := newTestApp(t)

	app, cmd := press(t, app, "P")
	if cmd != nil {
		t.Fatal("PDF export must wait for confirmation")
	}
	if !app.confirmDialog.IsActive() {
		t.Fatal("expected confirm dialog")
	}

	app, cmd = press(t, app, "y")
	result, ok := cmd().(confirm.ResultMsg)
	if !ok || !result.Confirmed || result.Action != report.ActionExportPDF {
		t.Fatalf("unexpected confirm result %+v", result)
	}

	m, cmd := app.Update(result)
	app = *m.(*App)
	done, ok := cmd().(ui.ExportDoneMsg)
	if !ok {
		t.Fatalf("expected ExportDoneMsg, got %T", cmd())
	}
	if done.Err != nil {
		t.Fatalf("export failed: %v", done.Err)
	}
	data, err := os.ReadFile(done.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("export is not a PDF")
	}

	m, _ = app.Update(done)
	app = *m.(*App)
	if app.toast == nil || !strings.Contains(app.toast.notice.Text, "Exported 4 results") {
		t.Errorf("expected success toast, got %+v", app.toast)
	}
}

func TestAppJSONExportOfVisibleRows(t *testing.T) {
	app := newTestApp(t)
	app, _ = press(t, app, "p")

	_, cmd := press(t, app, "J")
	if cmd == nil {
		t.Fatal("JSON export should start immediately")
	}
	done := cmd().(ui.ExportDoneMsg)
	if done.Err != nil || done.Rows != 2 {
		t.Fatalf("unexpected export result %+v", done)
	}
	data, err := os.ReadFile(done.Path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Billing Inquiry") {
		t.Error("hidden rows must not be exported")
	}
}

func TestAppToastExpires(t *testing.T) {
	app := newTestApp(t)
	m, _ := app.Update(filteroverlay.ResultMsg{Applied: true, Input: ops.RangeInput{To: "yesterday"}})
	app = *m.(*App)
	if app.toast == nil {
		t.Fatal("expected a toast")
	}
	seq := app.toast.seq

	m, _ = app.Update(ui.NoticeExpiredMsg{Seq: seq - 1})
	app = *m.(*App)
	if app.toast == nil {
		t.Fatal("stale expiry must not clear a newer toast")
	}
	m, _ = app.Update(ui.NoticeExpiredMsg{Seq: seq})
	app = *m.(*App)
	if app.toast != nil {
		t.Error("toast should clear after its expiry")
	}
}

func TestAppToggleDetails(t *testing.T) {
	app := newTestApp(t)

	app, _ = press(t, app, "enter")
	if app.detailsView.Row() == nil || app.detailsView.Row().ID != 1 {
		t.Fatal("enter should open details for the selected row")
	}
	if !strings.Contains(app.View(), "#1 Excellent Customer Service") {
		t.Error("details pane should be rendered")
	}

	app, _ = press(t, app, "enter")
	if app.detailsView.Row() != nil {
		t.Fatal("enter again should close details")
	}

	if !strings.Contains(app.contextHints(), "D:expand all") {
		t.Errorf("hints should offer expand all, got %q", app.contextHints())
	}
	app, _ = press(t, app, "D")
	if !strings.Contains(app.contextHints(), "D:collapse all") {
		t.Errorf("hints should offer collapse all, got %q", app.contextHints())
	}
	app, _ = press(t, app, "j")
	if r := app.detailsView.Row(); r == nil || r.ID != 2 {
		t.Error("expanded layout should show details for every row")
	}
}

func TestAppHelpOverlay(t *testing.T) {
	app := newTestApp(t)
	app, _ = press(t, app, "?")
	if !strings.Contains(app.View(), "Export PDF") {
		t.Error("help should list toolbar actions")
	}
	app, _ = press(t, app, "x")
	if app.showHelp {
		t.Error("any key should close help")
	}
	if got := shownIDs(app); len(got) != 4 {
		t.Error("the key closing help must not run an action")
	}
}
