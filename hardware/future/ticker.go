// Package future implements a small scheduler for payloads that must run a
// fixed number of cycles from now. It is the mechanism behind every
// deferred-visibility register in the core: a VIC-II write that should only
// be visible on the following cycle, a CIA timer reload that must happen on
// a precise pipeline stage, a drive byte-ready pulse, a cartridge
// NMI-will-trigger hook, and the keyboard's auto-type queue all schedule a
// payload through a Ticker rather than hand-rolling a counter.
package future

import (
	"fmt"
	"strings"
)

// Event is a scheduled payload. The zero value is not useful; obtain an
// Event from Ticker.Schedule.
type Event struct {
	label       string
	description string
	remaining   int
	delay       int
	payload     func()
	dropped     bool
}

// RemainingCycles returns the number of Tick() calls before the payload
// runs, or -1 if the event has already fired, been forced, or been dropped.
func (ev *Event) RemainingCycles() int {
	return ev.remaining
}

// JustStarted reports whether the event was scheduled on the current cycle
// (i.e. Tick() has not yet been called since Schedule).
func (ev *Event) JustStarted() bool {
	return ev.remaining == ev.delay
}

// AboutToEnd reports whether the next Tick() will run the payload.
func (ev *Event) AboutToEnd() bool {
	return ev.remaining == 0
}

// Force runs the payload immediately and removes the event from the
// schedule.
func (ev *Event) Force() {
	if ev.dropped || ev.remaining < 0 {
		return
	}
	ev.remaining = -1
	ev.payload()
}

// Drop removes the event from the schedule without running its payload.
func (ev *Event) Drop() {
	ev.remaining = -1
	ev.dropped = true
}

// Ticker holds zero or more pending Events, all belonging to the same
// logical source (named by label, used only for String()).
type Ticker struct {
	label   string
	pending []*Event
}

// NewTicker creates a Ticker. label identifies the ticker in String() output
// (e.g. the chip or register this ticker schedules events for).
func NewTicker(label string) *Ticker {
	return &Ticker{label: label}
}

// Schedule adds a new event that will run payload after delay calls to
// Tick(). A delay of 0 means the payload runs on the very next Tick(); a
// negative delay runs the payload immediately, synchronously, without
// entering the schedule at all.
func (tck *Ticker) Schedule(delay int, payload func(), description string) *Event {
	ev := &Event{
		label:       tck.label,
		description: description,
		remaining:   delay,
		delay:       delay,
		payload:     payload,
	}

	if delay < 0 {
		ev.remaining = -1
		payload()
		return ev
	}

	tck.pending = append(tck.pending, ev)
	return ev
}

// Tick advances every pending event by one cycle. An event whose remaining
// count is already zero fires on this call (its payload runs and it leaves
// the schedule); every other pending event simply has its remaining count
// decremented. Tick returns an error unless at least one event actually
// fired during this call — a tick that only counts down, or a tick on an
// empty schedule, is reported as a non-event.
func (tck *Ticker) Tick() error {
	fired := false

	live := tck.pending[:0]
	for _, ev := range tck.pending {
		if ev.dropped || ev.remaining < 0 {
			continue
		}

		if ev.remaining == 0 {
			ev.remaining = -1
			ev.payload()
			fired = true
			continue
		}

		ev.remaining--
		live = append(live, ev)
	}
	tck.pending = live

	if !fired {
		return fmt.Errorf("future: %s: nothing fired", tck.label)
	}

	return nil
}

// Len returns the number of events still pending.
func (tck *Ticker) Len() int {
	n := 0
	for _, ev := range tck.pending {
		if !ev.dropped && ev.remaining >= 0 {
			n++
		}
	}
	return n
}

func (tck *Ticker) String() string {
	s := strings.Builder{}
	for _, ev := range tck.pending {
		if ev.dropped || ev.remaining < 0 {
			continue
		}
		if s.Len() > 0 {
			s.WriteString("\n")
		}
		fmt.Fprintf(&s, "%s: %s -> %d", tck.label, ev.description, ev.remaining)
	}
	return s.String()
}
