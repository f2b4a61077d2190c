package filteroverlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/truelies-tui/internal/ops"
	"github.com/altinukshini/truelies-tui/internal/ui"
)

// ---------------------------------------------------------------------------
// Result message
// ---------------------------------------------------------------------------

// ResultMsg is emitted when the user applies or cancels the filter. Input
// holds the raw field text; parsing is left to the receiver.
type ResultMsg struct {
	Applied bool
	Input   ops.RangeInput
}

// ---------------------------------------------------------------------------
// Field enum
// ---------------------------------------------------------------------------

type field int

const (
	fieldStatus field = iota
	fieldMinScore
	fieldMaxScore
	fieldFrom
	fieldTo
	fieldMinFacts
	fieldMaxFacts
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldStatus:   "Status:",
	fieldMinScore: "Min score:",
	fieldMaxScore: "Max score:",
	fieldFrom:     "From date:",
	fieldTo:       "To date:",
	fieldMinFacts: "Min facts:",
	fieldMaxFacts: "Max facts:",
}

var statusOptions = []string{"pass", "fail"}

const dateLayout = "2006-01-02"

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is the Bubble Tea model for the advanced filter overlay.
type Model struct {
	active    bool
	focused   field
	statusIdx int // -1 = all
	// inputs is indexed by field; the status slot is unused.
	inputs [fieldCount]textinput.Model
	width  int
	height int
}

// New creates an overlay pre-populated from the filter currently applied.
// The overlay starts in the active state.
func New(current ops.RangeFilter) Model {
	m := Model{active: true, statusIdx: -1}

	placeholders := [fieldCount]string{
		fieldMinScore: "0.0",
		fieldMaxScore: "1.0",
		fieldFrom:     dateLayout,
		fieldTo:       dateLayout,
		fieldMinFacts: "0",
		fieldMaxFacts: "10",
	}
	for f := fieldMinScore; f < fieldCount; f++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[f]
		ti.CharLimit = 32
		ti.Width = 20
		m.inputs[f] = ti
	}

	status := strings.ToLower(strings.TrimSpace(current.Status))
	for i, s := range statusOptions {
		if s == status {
			m.statusIdx = i
			break
		}
	}
	if current.MinScore != nil {
		m.inputs[fieldMinScore].SetValue(formatFloat(*current.MinScore))
	}
	if current.MaxScore != nil {
		m.inputs[fieldMaxScore].SetValue(formatFloat(*current.MaxScore))
	}
	if current.Start != nil {
		m.inputs[fieldFrom].SetValue(current.Start.Format(dateLayout))
	}
	if current.End != nil {
		m.inputs[fieldTo].SetValue(current.End.Format(dateLayout))
	}
	if current.MinFacts != nil {
		m.inputs[fieldMinFacts].SetValue(strconv.Itoa(*current.MinFacts))
	}
	if current.MaxFacts != nil {
		m.inputs[fieldMaxFacts].SetValue(strconv.Itoa(*current.MaxFacts))
	}
	return m
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// IsActive reports whether the overlay is currently visible.
func (m Model) IsActive() bool { return m.active }

// SetSize stores terminal dimensions so the overlay can centre itself.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Init satisfies the tea.Model interface.
func (m Model) Init() tea.Cmd { return nil }

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// Update handles key events while the overlay is active.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// When a text input is focused, let it handle most keys first.
	if m.isTextFieldFocused() {
		switch keyMsg.String() {
		case "esc":
			m.active = false
			return m, emitResult(false, ops.RangeInput{})
		case "enter":
			m.blurTextInputs()
			return m, nil
		case "up":
			m.blurTextInputs()
			m.moveFocus(-1)
			return m, nil
		case "down":
			m.blurTextInputs()
			m.moveFocus(1)
			return m, nil
		case "tab":
			m.blurTextInputs()
			m.moveFocus(1)
			return m, m.focusCurrentTextInput()
		case "shift+tab":
			m.blurTextInputs()
			m.moveFocus(-1)
			return m, m.focusCurrentTextInput()
		default:
			var cmd tea.Cmd
			m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
			return m, cmd
		}
	}

	switch keyMsg.String() {
	case "j", "down":
		m.moveFocus(1)
	case "k", "up":
		m.moveFocus(-1)
	case "tab":
		m.moveFocus(1)
		return m, m.focusCurrentTextInput()
	case "shift+tab":
		m.moveFocus(-1)
		return m, m.focusCurrentTextInput()

	// Cycle forward / enter text input.
	case "enter", "right", "l":
		if m.focused == fieldStatus {
			m.statusIdx = cycleForward(m.statusIdx, len(statusOptions))
			return m, nil
		}
		return m, m.focusCurrentTextInput()

	// Cycle backward.
	case "left", "h":
		if m.focused == fieldStatus {
			m.statusIdx = cycleBackward(m.statusIdx, len(statusOptions))
		}

	// Apply.
	case "a":
		m.active = false
		return m, emitResult(true, m.Input())

	// Clear.
	case "c":
		m.statusIdx = -1
		for f := fieldMinScore; f < fieldCount; f++ {
			m.inputs[f].SetValue("")
		}

	// Cancel.
	case "esc":
		m.active = false
		return m, emitResult(false, ops.RangeInput{})
	}
	return m, nil
}

// Input returns the current field text.
func (m Model) Input() ops.RangeInput {
	in := ops.RangeInput{
		Status:   ops.StatusAll,
		MinScore: strings.TrimSpace(m.inputs[fieldMinScore].Value()),
		MaxScore: strings.TrimSpace(m.inputs[fieldMaxScore].Value()),
		From:     strings.TrimSpace(m.inputs[fieldFrom].Value()),
		To:       strings.TrimSpace(m.inputs[fieldTo].Value()),
		MinFacts: strings.TrimSpace(m.inputs[fieldMinFacts].Value()),
		MaxFacts: strings.TrimSpace(m.inputs[fieldMaxFacts].Value()),
	}
	if m.statusIdx >= 0 && m.statusIdx < len(statusOptions) {
		in.Status = statusOptions[m.statusIdx]
	}
	return in
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the overlay.
func (m Model) View() string {
	if !m.active {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Width(12).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(12).Bold(true).Foreground(ui.ColorPrimary)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))
	allStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true)

	rows := make([]string, 0, int(fieldCount))
	for f := field(0); f < fieldCount; f++ {
		ls := labelStyle
		if f == m.focused {
			ls = focusedLabelStyle
		}

		var value string
		if f == fieldStatus {
			if m.statusIdx < 0 || m.statusIdx >= len(statusOptions) {
				value = allStyle.Render("All statuses")
			} else {
				value = valueStyle.Render(statusOptions[m.statusIdx])
			}
		} else {
			value = m.inputs[f].View()
		}

		cursor := "  "
		if f == m.focused {
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, ls.Render(fieldLabels[f]), value))
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		MarginBottom(1).
		Render("Advanced Filters")

	help := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginTop(1).
		Render("a: apply  c: clear  esc: cancel")

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		strings.Join(rows, "\n"),
		help,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(56).
		Render(body)

	// Centre the box in the terminal.
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			box)
	}
	return box
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (m *Model) moveFocus(delta int) {
	next := int(m.focused) + delta
	if next < 0 {
		next = int(fieldCount) - 1
	}
	if next >= int(fieldCount) {
		next = 0
	}
	m.focused = field(next)
}

func (m Model) isTextFieldFocused() bool {
	for f := fieldMinScore; f < fieldCount; f++ {
		if m.inputs[f].Focused() {
			return true
		}
	}
	return false
}

func (m *Model) blurTextInputs() {
	for f := fieldMinScore; f < fieldCount; f++ {
		m.inputs[f].Blur()
	}
}

func (m *Model) focusCurrentTextInput() tea.Cmd {
	if m.focused == fieldStatus {
		return nil
	}
	return m.inputs[m.focused].Focus()
}

// cycleForward advances the index by one. -1 means "all", 0..max-1 are the
// actual entries, and going past the last entry wraps back to -1 (all).
func cycleForward(idx, count int) int {
	if count == 0 {
		return -1
	}
	idx++
	if idx >= count {
		idx = -1
	}
	return idx
}

// cycleBackward is the reverse of cycleForward.
func cycleBackward(idx, count int) int {
	if count == 0 {
		return -1
	}
	idx--
	if idx < -1 {
		idx = count - 1
	}
	return idx
}

func emitResult(applied bool, in ops.RangeInput) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Applied: applied, Input: in}
	}
}
