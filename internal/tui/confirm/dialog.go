package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/truelies-tui/internal/report"
	"github.com/altinukshini/truelies-tui/internal/ui"
)

// ResultMsg arrives after the dialog has closed itself.
type ResultMsg struct {
	Confirmed bool
	Action    report.Action
}

type Model struct {
	Title    string
	Message  string
	Action   report.Action
	active   bool
	selected bool // true = confirm selected
}

// New opens a dialog asking whether to run action. Confirm is preselected.
func New(title, message string, action report.Action) Model {
	return Model{
		Title:    title,
		Message:  message,
		Action:   action,
		active:   true,
		selected: true,
	}
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			return m.close(true)
		case "n", "N", "esc":
			return m.close(false)
		case "enter":
			return m.close(m.selected)
		case "tab", "left", "right", "h", "l":
			m.selected = !m.selected
		}
	}
	return m, nil
}

func (m Model) close(confirmed bool) (Model, tea.Cmd) {
	m.active = false
	action := m.Action
	return m, func() tea.Msg {
		return ResultMsg{Confirmed: confirmed, Action: action}
	}
}

const dialogWidth = 56

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ui.ColorWarning).
	Padding(1, 2).
	Width(dialogWidth)

var chosenStyle = lipgloss.NewStyle().
	Bold(true).
	Padding(0, 2).
	Foreground(lipgloss.Color("#F9FAFB")).
	Background(ui.ColorPrimary)

var otherStyle = ui.StyleMuted.Padding(0, 2)

func (m Model) View() string {
	if !m.active {
		return ""
	}
	yes, no := otherStyle, otherStyle
	if m.selected {
		yes = chosenStyle
	} else {
		no = chosenStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("Export"), "  ", no.Render("Cancel"))

	var b strings.Builder
	b.WriteString(ui.StyleWarning.Bold(true).Render(m.Title))
	b.WriteString("\n\n")
	b.WriteString(m.Message)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(dialogWidth-4, lipgloss.Center, buttons))
	b.WriteString("\n\n")
	b.WriteString(ui.StyleMuted.Render("y export · n/esc cancel · tab switch"))
	return boxStyle.Render(b.String())
}
