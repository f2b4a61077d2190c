package dashboard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/truelies-tui/internal/model"
	"github.com/altinukshini/truelies-tui/internal/ops"
)

func TestShowRendersStats(t *testing.T) {
	st, err := ops.ComputeStats([]model.Row{
		{Score: 0.95, Status: "PASS A"},
		{Score: 0.15, Status: "FAIL F"},
	}, model.DefaultPassThreshold)
	if err != nil {
		t.Fatal(err)
	}

	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 60})
	m.Show(st, "all")
	if !m.IsActive() {
		t.Fatal("Show should activate the dashboard")
	}

	view := m.View()
	for _, want := range []string{"Overview (all results)", "Average:   0.550", "Grades", "0.9-1.0", "0.1-0.2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.IsActive() || m.View() != "" {
		t.Error("esc should close the dashboard")
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		n, peak, filled int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, barMaxLen},
		{1, 1000, 1},
		{2, 4, barMaxLen / 2},
	}
	for _, tt := range tests {
		got := strings.Count(bar(tt.n, tt.peak), "█")
		if got != tt.filled {
			t.Errorf("bar(%d, %d) filled %d, want %d", tt.n, tt.peak, got, tt.filled)
		}
	}
}
