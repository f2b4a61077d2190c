// Package debounce collapses bursts of input into one delayed message that
// carries the most recent value.
package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultWait is the search input window.
const DefaultWait = 300 * time.Millisecond

// Msg is delivered once the wait after a Trigger has passed. Only the Msg
// of the latest Trigger is accepted; the others are stale.
type Msg[T any] struct {
	ID    uint64
	Value T
}

// Debouncer correlates delayed messages with the last Trigger by id, so a
// new Trigger supersedes the pending one without cancelling its timer.
type Debouncer[T any] struct {
	wait    time.Duration
	id      uint64
	pending bool
}

// New returns a Debouncer with the given window. A non-positive wait
// delivers the message without delay.
func New[T any](wait time.Duration) *Debouncer[T] {
	return &Debouncer[T]{wait: wait}
}

// Trigger supersedes any pending value and returns the command that
// delivers v after the window.
func (d *Debouncer[T]) Trigger(v T) tea.Cmd {
	d.id++
	d.pending = true
	msg := Msg[T]{ID: d.id, Value: v}
	if d.wait <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d.wait, func(time.Time) tea.Msg { return msg })
}

// Accept reports whether msg belongs to the latest Trigger and returns its
// value. An accepted message ends the pending state.
func (d *Debouncer[T]) Accept(msg Msg[T]) (T, bool) {
	if !d.pending || msg.ID != d.id {
		var zero T
		return zero, false
	}
	d.pending = false
	return msg.Value, true
}

// Stop drops the pending value; its message will be rejected.
func (d *Debouncer[T]) Stop() {
	d.id++
	d.pending = false
}

// Pending reports whether a triggered value is waiting for its window.
func (d *Debouncer[T]) Pending() bool { return d.pending }
