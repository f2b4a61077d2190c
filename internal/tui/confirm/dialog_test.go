package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/truelies-tui/internal/report"
)

func TestDialogKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{"y confirms", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'y'}}}, true},
		{"n declines", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'n'}}}, false},
		{"esc declines", []tea.KeyMsg{{Type: tea.KeyEscape}}, false},
		{"enter takes default", []tea.KeyMsg{{Type: tea.KeyEnter}}, true},
		{"tab then enter", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("Export PDF", "Write it?", report.ActionExportPDF)
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = m.Update(k)
			}
			if m.IsActive() {
				t.Fatal("dialog should close")
			}
			res, ok := cmd().(ResultMsg)
			if !ok {
				t.Fatalf("expected ResultMsg, got %T", cmd())
			}
			if res.Confirmed != tt.want {
				t.Errorf("Confirmed = %v, want %v", res.Confirmed, tt.want)
			}
			if res.Action != report.ActionExportPDF {
				t.Errorf("unexpected action %v", res.Action)
			}
		})
	}
}

func TestInactiveDialogIgnoresKeys(t *testing.T) {
	var m Model
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if cmd != nil || m.View() != "" {
		t.Error("zero dialog should do nothing")
	}
}
