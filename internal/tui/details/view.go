package details

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ui"
)

type Model struct {
	viewport viewport.Model
	row      *model.Row
	width    int
	height   int
	ready    bool
}

func New() Model {
	return Model{}
}

// SetRow shows r, or clears the pane when r is nil. The scroll position
// resets only when the row changes.
func (m *Model) SetRow(r *model.Row) {
	changed := r == nil || m.row == nil || r.ID != m.row.ID
	m.row = r
	if m.ready {
		m.viewport.SetContent(m.render())
		if changed {
			m.viewport.GotoTop()
		}
	}
}

func (m Model) Row() *model.Row { return m.row }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !key.Matches(msg, ui.Keys.Up, ui.Keys.Down, ui.Keys.PageUp, ui.Keys.PageDown) {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// One line is taken by the title.
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-1)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 1
		}
		m.viewport.SetContent(m.render())
	}
	return m, nil
}

func (m Model) render() string {
	if m.row == nil {
		return ""
	}
	r := m.row
	label := lipgloss.NewStyle().Foreground(ui.ColorMuted).Width(12)
	value := lipgloss.NewStyle().Width(max(m.width-14, 10))

	line := func(k, v string) string {
		return "  " + lipgloss.JoinHorizontal(lipgloss.Top, label.Render(k), value.Render(v)) + "\n"
	}

	var b strings.Builder
	b.WriteString(line("Status", ui.StatusStyle(r.Status).Render(r.Status)))
	grade := model.GradeFor(r.Score)
	b.WriteString(line("Score", fmt.Sprintf("%s (%s)", r.ScoreLabel(), ui.GradeStyle(grade).Render(string(grade)))))
	b.WriteString(line("Date", r.Date))
	b.WriteString(line("Facts", r.Facts))
	if len(r.Details) == 0 {
		b.WriteString("\n" + ui.StyleMuted.Render("  No further details") + "\n")
		return b.String()
	}
	b.WriteString("\n")
	for _, d := range r.Details {
		b.WriteString(line(d.Key, d.Value))
	}
	return b.String()
}

func (m Model) View() string {
	if m.row == nil {
		return "\n  Select a result"
	}
	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf(" #%d %s", m.row.ID, m.row.TestName))
	if !m.ready {
		return title
	}
	return title + "\n" + m.viewport.View()
}
