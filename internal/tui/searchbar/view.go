package searchbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/truelies-tui/internal/search"
	"github.com/altinukshini/truelies-tui/internal/ui"
)

// SubmitMsg is emitted when enter is pressed; the query skips the debounce.
type SubmitMsg struct {
	Query string
}

type Model struct {
	input  textinput.Model
	width  int
	active bool
}

func New() Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search: score:0.8, status:pass, today, excellent..."
	ti.CharLimit = 256

	return Model{
		input: ti,
	}
}

func (m *Model) Activate() tea.Cmd {
	m.active = true
	return m.input.Focus()
}

func (m *Model) Deactivate() {
	m.active = false
	m.input.Blur()
}

func (m Model) IsActive() bool {
	return m.active
}

func (m Model) Query() string {
	return m.input.Value()
}

// SetQuery replaces the text without emitting anything.
func (m *Model) SetQuery(q string) {
	m.input.SetValue(q)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			q := m.input.Value()
			m.Deactivate()
			return m, func() tea.Msg { return SubmitMsg{Query: q} }
		case "esc":
			m.Deactivate()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width / 2
	}
	return m, nil
}

// Hint describes how the current text will be interpreted.
func (m Model) Hint() string {
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		return ""
	}
	return "matching " + search.Describe(search.Parse(q))
}

func (m Model) View() string {
	if !m.active && m.input.Value() == "" {
		return ui.StyleMuted.Render("  / to search")
	}
	line := "  " + m.input.View()
	if hint := m.Hint(); hint != "" && m.width > lipgloss.Width(line)+len(hint)+4 {
		line += "  " + ui.StyleMuted.Render(hint)
	}
	return line
}
