package details

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/truelies-tui/internal/model"
)

func TestViewShowsRowDetails(t *testing.T) {
	m := New()
	if !strings.Contains(m.View(), "Select a result") {
		t.Fatal("empty pane should prompt for a selection")
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	r := model.Row{
		ID: 7, TestName: "Refund Request", Status: "FAIL D", Score: 0.61,
		Date: "2024-12-01", Facts: "2/3",
		Details: []model.Detail{{Key: "User input", Value: "I want a refund"}},
	}
	m.SetRow(&r)

	view := m.View()
	for _, want := range []string{"#7 Refund Request", "0.610 (D)", "User input", "I want a refund"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.SetRow(nil)
	if m.Row() != nil {
		t.Error("SetRow(nil) should clear the pane")
	}
}

func TestRowWithoutDetails(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	r := model.Row{ID: 1, TestName: "Plain", Status: "PASS A", Score: 1}
	m.SetRow(&r)
	if !strings.Contains(m.View(), "No further details") {
		t.Errorf("expected placeholder:\n%s", m.View())
	}
}
