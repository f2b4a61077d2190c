package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/altinukshini/truelies-tui/internal/report"
	"github.com/altinukshini/truelies-tui/internal/ui"
)

func RenderHeader(title, path string, visible, total int, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(fmt.Sprintf(" %s | %s", title, path))

	color := ui.ColorSuccess
	if visible < total {
		color = ui.ColorWarning
	}
	if total == 0 {
		color = ui.ColorMuted
	}
	count := lipgloss.NewStyle().Foreground(color).
		Render(fmt.Sprintf("%d/%d results ", visible, total))

	gap := width - lipgloss.Width(left) - lipgloss.Width(count)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + count)
}

// RenderToolbar lays the buttons out on one line, dropping the ones that
// do not fit.
func RenderToolbar(buttons []report.Button, width int) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	var parts []string
	used := 1
	for _, b := range buttons {
		plain := b.Key + " " + b.Label
		w := runewidth.StringWidth(plain) + 2
		if width > 0 && used+w > width {
			break
		}
		used += w
		parts = append(parts, keyStyle.Render(b.Key)+" "+labelStyle.Render(b.Label))
	}
	return " " + strings.Join(parts, "  ")
}
