package results

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ui"
)

// Fixed column widths; the test name column takes the rest.
const (
	idWidth     = 4
	statusWidth = 10
	scoreWidth  = 7
	dateWidth   = 19
	factsWidth  = 7
	minNameW    = 12
	// cellPadding is the horizontal padding the table adds per column.
	cellPadding = 2
)

type Model struct {
	table     table.Model
	rows      []model.Row
	expanded  map[int]bool
	expandAll bool
	width     int
	height    int
}

func New() Model {
	km := table.KeyMap{
		LineUp:       ui.Keys.Up,
		LineDown:     ui.Keys.Down,
		PageUp:       ui.Keys.PageUp,
		PageDown:     ui.Keys.PageDown,
		HalfPageUp:   key.NewBinding(key.WithDisabled()),
		HalfPageDown: key.NewBinding(key.WithDisabled()),
		GotoTop:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		GotoBottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(ui.ColorPrimary).
		Bold(false)

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithKeyMap(km),
		table.WithStyles(styles),
	)
	return Model{table: t, expanded: make(map[int]bool)}
}

func columns(width int) []table.Column {
	fixed := idWidth + statusWidth + scoreWidth + dateWidth + factsWidth
	nameW := width - fixed - 6*cellPadding
	if nameW < minNameW {
		nameW = minNameW
	}
	return []table.Column{
		{Title: "#", Width: idWidth},
		{Title: "Test", Width: nameW},
		{Title: "Status", Width: statusWidth},
		{Title: "Score", Width: scoreWidth},
		{Title: "Date", Width: dateWidth},
		{Title: "Facts", Width: factsWidth},
	}
}

// SetRows replaces the shown rows, keeping the cursor on the same row id
// when it is still present.
func (m *Model) SetRows(rows []model.Row) {
	selected, hadSelection := m.Selected()
	m.rows = rows

	trs := make([]table.Row, len(rows))
	cursor := 0
	for i, r := range rows {
		trs[i] = table.Row{
			strconv.Itoa(r.ID),
			r.TestName,
			r.Status,
			r.ScoreLabel(),
			r.Date,
			r.Facts,
		}
		if hadSelection && r.ID == selected.ID {
			cursor = i
		}
	}
	m.table.SetRows(trs)
	m.table.SetCursor(cursor)
}

// Rows returns the shown rows in display order.
func (m Model) Rows() []model.Row { return m.rows }

func (m Model) Len() int { return len(m.rows) }

// Selected returns the row under the cursor.
func (m Model) Selected() (model.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.Row{}, false
	}
	return m.rows[i], true
}

// ToggleSelected flips the details of the row under the cursor.
func (m *Model) ToggleSelected() {
	if r, ok := m.Selected(); ok {
		m.expanded[r.ID] = !m.expanded[r.ID]
	}
}

// ToggleAll flips the expanded layout for every row.
func (m *Model) ToggleAll() {
	m.expandAll = !m.expandAll
	if !m.expandAll {
		clear(m.expanded)
	}
}

func (m Model) ExpandedAll() bool { return m.expandAll }

// ShowDetails reports whether the selected row's details are open.
func (m Model) ShowDetails() bool {
	r, ok := m.Selected()
	if !ok {
		return false
	}
	return m.expandAll || m.expanded[r.ID]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(msg.Width))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(msg.Height)
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.rows) == 0 {
		return ui.StyleMuted.Render("\n  No results match the current filter")
	}
	return m.table.View()
}

// Position is the 1-based cursor position for the status bar.
func (m Model) Position() string {
	if len(m.rows) == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", m.table.Cursor()+1, len(m.rows))
}
