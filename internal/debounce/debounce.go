// Package debounce coalesces rapidly changing input into committed values.
//
// State is a pure value for event loops that own their timers (the TUI
// schedules a tick per Tag). Debouncer wraps the same rule with real timers
// for callers that just want a channel of committed values.
package debounce

import (
	"sync"
	"time"
)

// Delay is the quiet period before raw input is committed.
const Delay = 500 * time.Millisecond

// Tag identifies one scheduled commit. Only the latest tag may commit.
type Tag uint64

// State holds raw and committed input.
type State struct {
	Raw       string
	Committed string
	latest    Tag
}

// Type records a key stroke and returns the tag of the commit it schedules.
// Every earlier pending tag becomes stale.
func (s State) Type(raw string) (State, Tag) {
	s.Raw = raw
	s.latest++
	return s, s.latest
}

// Fire commits Raw if tag is the latest one issued. It reports whether the
// committed value was replaced.
func (s State) Fire(tag Tag) (State, bool) {
	if tag != s.latest {
		return s, false
	}
	s.Committed = s.Raw
	return s, true
}

// Pending reports whether raw input is waiting to be committed.
func (s State) Pending() bool {
	return s.Raw != s.Committed
}

// Latest returns the most recently issued tag.
func (s State) Latest() Tag {
	return s.latest
}

// Debouncer is a goroutine-safe debouncer backed by time.AfterFunc.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	state  State
	timer  *time.Timer
	out    chan string
	closed bool
}

// New creates a Debouncer. A non-positive delay falls back to Delay.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = Delay
	}
	return &Debouncer{
		delay: delay,
		out:   make(chan string, 1),
	}
}

// Push records raw input and reschedules the pending commit.
func (d *Debouncer) Push(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	var tag Tag
	d.state, tag = d.state.Type(raw)
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(tag) })
}

func (d *Debouncer) fire(tag Tag) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	var ok bool
	d.state, ok = d.state.Fire(tag)
	if !ok {
		return
	}

	// Keep only the newest commit if the reader is behind.
	select {
	case <-d.out:
	default:
	}
	d.out <- d.state.Committed
}

// Committed delivers committed values. The channel is closed by Close.
func (d *Debouncer) Committed() <-chan string {
	return d.out
}

// Raw returns the latest pushed value.
func (d *Debouncer) Raw() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Raw
}

// Close stops the pending commit and closes the Committed channel.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.out)
}
