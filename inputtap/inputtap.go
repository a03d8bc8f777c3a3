// Package inputtap implements the bounded key-event queue reactive/ripple
// renderers drain while drawing. Feeding real input device events into the
// queue is a hotplug monitor's job and out of scope here; this package only
// defines the queue and the event shape renderers consume.
package inputtap

import "context"

// EventKind distinguishes a key press from a release.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
)

// Event is one input-device event a renderer reacts to.
type Event struct {
	Kind EventKind
	Row  int
	Col  int
}

// DefaultCapacity is the queue's default buffer size.
const DefaultCapacity = 64

// Tap is a bounded channel-based event queue. A full queue drops the
// oldest-pending event rather than blocking the feeder.
type Tap struct {
	events chan Event
}

// New returns an empty Tap with the given buffer capacity.
func New(capacity int) *Tap {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tap{events: make(chan Event, capacity)}
}

// Push enqueues an event, dropping the oldest queued event if full.
func (t *Tap) Push(e Event) {
	select {
	case t.events <- e:
		return
	default:
	}
	select {
	case <-t.events:
	default:
	}
	select {
	case t.events <- e:
	default:
	}
}

// TryNext returns the next queued event without blocking, or false if empty.
func (t *Tap) TryNext() (Event, bool) {
	select {
	case e := <-t.events:
		return e, true
	default:
		return Event{}, false
	}
}

// Wait cooperatively suspends until an event arrives or ctx is cancelled,
// matching the voluntary-yield suspension point renderers may use during
// draw (spec.md §5).
func (t *Tap) Wait(ctx context.Context) (Event, bool) {
	select {
	case e := <-t.events:
		return e, true
	case <-ctx.Done():
		return Event{}, false
	}
}
