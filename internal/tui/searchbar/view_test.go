package searchbar

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTypingAndSubmit(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 1})

	// Keys are ignored until the bar is focused.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if m.Query() != "" {
		t.Fatalf("inactive bar took input: %q", m.Query())
	}

	m.Activate()
	for _, r := range "score:0.8" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if m.Query() != "score:0.8" {
		t.Fatalf("unexpected query %q", m.Query())
	}
	if !strings.Contains(m.View(), "score ≥ 0.8") {
		t.Errorf("view should describe the query:\n%s", m.View())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsActive() {
		t.Error("enter should blur the bar")
	}
	if msg, ok := cmd().(SubmitMsg); !ok || msg.Query != "score:0.8" {
		t.Errorf("unexpected submit %#v", cmd())
	}
	if m.Query() != "score:0.8" {
		t.Error("query text should stay after submit")
	}
}

func TestEscBlursWithoutSubmit(t *testing.T) {
	m := New()
	m.Activate()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.IsActive() || cmd != nil {
		t.Error("esc should blur without a command")
	}
}
