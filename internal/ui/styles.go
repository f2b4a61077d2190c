package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/truelies-tui/internal/model"
)

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// StatusStyle colors a status label by its outcome.
func StatusStyle(status string) lipgloss.Style {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "pass") || strings.Contains(s, "✅"):
		return StyleSuccess
	case strings.Contains(s, "fail") || strings.Contains(s, "❌"):
		return StyleFailure
	default:
		return StyleInfo
	}
}

func GradeStyle(g model.Grade) lipgloss.Style {
	switch g {
	case model.GradeA, model.GradeB:
		return StyleSuccess
	case model.GradeC:
		return StyleWarning
	default:
		return StyleFailure
	}
}

func StatusIcon(status string) string {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "pass") || strings.Contains(s, "✅"):
		return StyleSuccess.Render("V")
	case strings.Contains(s, "fail") || strings.Contains(s, "❌"):
		return StyleFailure.Render("X")
	default:
		return StyleMuted.Render("?")
	}
}

// NoticeStyle colors a toast by kind name: info, success or error.
func NoticeStyle(kind string) lipgloss.Style {
	switch kind {
	case "success":
		return StyleSuccess
	case "error":
		return StyleFailure
	default:
		return StyleInfo
	}
}
