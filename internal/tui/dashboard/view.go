package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ops"
	"github.com/altinukshini/truelies-tui/internal/ui"
)

const barMaxLen = 30

type Model struct {
	viewport viewport.Model
	stats    *ops.Stats
	scope    string
	active   bool
	width    int
	height   int
	ready    bool
}

func New() Model {
	return Model{}
}

// Show opens the dashboard over st. scope names the rows it covers.
func (m *Model) Show(st ops.Stats, scope string) {
	m.stats = &st
	m.scope = scope
	m.active = true
	if m.ready {
		m.viewport.SetContent(m.render())
		m.viewport.GotoTop()
	}
}

func (m *Model) Close() { m.active = false }

func (m Model) IsActive() bool { return m.active }

func (m Model) Stats() *ops.Stats { return m.stats }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
		if key.Matches(msg, ui.Keys.Back, ui.Keys.Stats, ui.Keys.Enter) {
			m.active = false
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		if m.stats != nil {
			m.viewport.SetContent(m.render())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) render() string {
	if m.stats == nil {
		return "  No data"
	}
	st := m.stats
	bold := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	var b strings.Builder

	// ── Overview ──────────────────────────────────────────────────────
	b.WriteString(bold.Render(fmt.Sprintf("  Overview (%s results)", m.scope)) + "\n\n")
	b.WriteString(fmt.Sprintf("  Tests:     %s\n", bold.Render(fmt.Sprintf("%d", st.Count))))
	b.WriteString(fmt.Sprintf("  Passed:    %s (%.1f%%)\n",
		ui.StyleSuccess.Render(fmt.Sprintf("%d", st.Passed)), st.PassRate*100))
	b.WriteString(fmt.Sprintf("  Failed:    %s\n\n",
		ui.StyleFailure.Render(fmt.Sprintf("%d", st.Failed))))

	// ── Scores ───────────────────────────────────────────────────────
	b.WriteString(bold.Render("  Scores") + "\n\n")
	b.WriteString(fmt.Sprintf("  Average:   %.3f\n", st.Mean))
	b.WriteString(fmt.Sprintf("  Median:    %.3f\n", st.Median))
	b.WriteString(fmt.Sprintf("  Min:       %.3f\n", st.Min))
	b.WriteString(fmt.Sprintf("  Max:       %.3f\n\n", st.Max))

	// ── Grades ───────────────────────────────────────────────────────
	b.WriteString(bold.Render("  Grades") + "\n\n")
	maxGrade := 0
	for _, n := range st.Grades {
		maxGrade = max(maxGrade, n)
	}
	for _, g := range model.Grades {
		n := st.Grades[g]
		b.WriteString(fmt.Sprintf("  %s  %s %s\n",
			ui.GradeStyle(g).Render(string(g)),
			ui.GradeStyle(g).Render(bar(n, maxGrade)),
			muted.Render(fmt.Sprintf("%d", n))))
	}
	b.WriteString("\n")

	// ── Histogram ────────────────────────────────────────────────────
	b.WriteString(bold.Render("  Score Distribution") + "\n\n")
	maxBucket := 0
	for _, n := range st.Histogram {
		maxBucket = max(maxBucket, n)
	}
	for i, n := range st.Histogram {
		lo := float64(i) / ops.HistogramBuckets
		hi := float64(i+1) / ops.HistogramBuckets
		style := ui.StyleFailure
		if lo >= st.PassThreshold {
			style = ui.StyleSuccess
		}
		b.WriteString(fmt.Sprintf("  %.1f-%.1f  %s %s\n",
			lo, hi, style.Render(bar(n, maxBucket)), muted.Render(fmt.Sprintf("%d", n))))
	}
	return b.String()
}

// bar draws n proportionally to peak; any non-zero count gets one cell.
func bar(n, peak int) string {
	barLen := 0
	if peak > 0 {
		barLen = n * barMaxLen / peak
		if n > 0 && barLen < 1 {
			barLen = 1
		}
	}
	return strings.Repeat("█", barLen) + strings.Repeat("░", barMaxLen-barLen)
}

func (m Model) View() string {
	if !m.active {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Render("  Statistics")
	hint := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("j/k: scroll  esc: close")
	if m.ready {
		return title + "    " + hint + "\n" + m.viewport.View()
	}
	return title + "\n" + m.render()
}
