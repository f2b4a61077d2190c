package filteroverlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/truelies-tui/internal/ops"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

func resultOf(t *testing.T, cmd tea.Cmd) ResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	res, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg, got %T", cmd())
	}
	return res
}

func TestApplyEmitsFieldText(t *testing.T) {
	m := New(ops.RangeFilter{})

	// Status: cycle to "fail".
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Min score: focus, type, leave.
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.isTextFieldFocused() {
		t.Fatal("enter on a text field should focus it")
	}
	m = typeText(m, "0.5")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Max facts via tab navigation.
	m, _ = m.Update(runes("k"))
	m, _ = m.Update(runes("k"))
	if m.focused != fieldMaxFacts {
		t.Fatalf("expected focus to wrap to max facts, got %d", m.focused)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "3")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := m.Update(runes("a"))
	if m.IsActive() {
		t.Error("overlay should close on apply")
	}
	res := resultOf(t, cmd)
	if !res.Applied {
		t.Fatal("expected Applied result")
	}
	want := ops.RangeInput{Status: "fail", MinScore: "0.5", MaxFacts: "3"}
	if res.Input != want {
		t.Errorf("got %+v, want %+v", res.Input, want)
	}
}

func TestLettersInTextFieldAreNotCommands(t *testing.T) {
	m := New(ops.RangeFilter{})
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "ac")
	if !m.IsActive() {
		t.Fatal("typing 'a' in a field must not apply")
	}
	if got := m.Input().MinScore; got != "ac" {
		t.Errorf("expected raw text kept for validation, got %q", got)
	}
}

func TestPrefillFromCurrentFilter(t *testing.T) {
	lo, hi, facts := 0.25, 0.9, 2
	f, err := ops.ParseRange(ops.RangeInput{From: "2024-12-01", To: "2024-12-03"})
	if err != nil {
		t.Fatal(err)
	}
	f.Status = "pass"
	f.MinScore, f.MaxScore, f.MinFacts = &lo, &hi, &facts

	got := New(f).Input()
	want := ops.RangeInput{
		Status: "pass", MinScore: "0.25", MaxScore: "0.9",
		From: "2024-12-01", To: "2024-12-03", MinFacts: "2",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClearAndCancel(t *testing.T) {
	lo := 0.5
	m := New(ops.RangeFilter{Status: "fail", MinScore: &lo})
	m, _ = m.Update(runes("c"))
	if got := m.Input(); got != (ops.RangeInput{Status: ops.StatusAll}) {
		t.Errorf("clear should empty every field, got %+v", got)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.IsActive() {
		t.Error("esc should close the overlay")
	}
	if resultOf(t, cmd).Applied {
		t.Error("esc must not apply")
	}
}

func TestStatusCycleWraps(t *testing.T) {
	m := New(ops.RangeFilter{})
	var seen []string
	for i := 0; i < 3; i++ {
		m, _ = m.Update(runes("l"))
		seen = append(seen, m.Input().Status)
	}
	if got := strings.Join(seen, ","); got != "pass,fail,all" {
		t.Errorf("unexpected cycle %s", got)
	}
	m, _ = m.Update(runes("h"))
	if m.Input().Status != "fail" {
		t.Errorf("h should cycle backward to fail, got %s", m.Input().Status)
	}
}

func TestViewListsFields(t *testing.T) {
	view := New(ops.RangeFilter{}).View()
	for _, want := range []string{"Advanced Filters", "Min score:", "To date:", "Max facts:", "All statuses"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
