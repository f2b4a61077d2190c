package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/truelies-tui/internal/ui"
)

var statusBarStyle = lipgloss.NewStyle().Background(lipgloss.Color("#111827"))

// RenderStatusBar draws status on the left and hints on the right. The
// status is expected to be styled already. Hints are dropped when they do
// not fit next to the status.
func RenderStatusBar(status, hints string, width int) string {
	left := "  " + status
	help := ui.StyleMuted.Render(hints + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 0 {
		help = ""
		gap = max(width-lipgloss.Width(left), 0)
	}
	return statusBarStyle.Width(width).
		Render(left + lipgloss.NewStyle().Width(gap).Render("") + help)
}
