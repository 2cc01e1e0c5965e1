// Package filter decides, for every system key event, whether it belongs to the
// push-to-talk chord. Matching events are consumed and turned into signals for
// the engine, everything else is forwarded untouched.
//
// Handle runs inside the OS hook callback. It never blocks: the chord is read
// from an atomically published snapshot and signals go to an unbounded FIFO.
package filter

import (
	"errors"
	"sync/atomic"
	"time"

	"parrot/internal/shortcut"
)

// ErrFilterUnavailable is returned by a Tap when the OS refuses to install
// the system-wide hook, usually because the privilege is missing.
var ErrFilterUnavailable = errors.New("input event filter unavailable")

// EventType is the kind of key event.
type EventType int

const (
	KeyDown EventType = iota
	KeyUp
)

func (t EventType) String() string {
	if t == KeyUp {
		return "up"
	}
	return "down"
}

// KeyEvent is one key event as delivered by the OS hook.
type KeyEvent struct {
	Type      EventType
	KeyCode   uint16
	Modifiers shortcut.Modifier // raw, including non-relevant bits
	Repeat    bool
}

// Decision tells the hook what to do with the event.
type Decision int

const (
	// Forward passes the event on unchanged.
	Forward Decision = iota
	// Consume drops the event so no other application sees it.
	Consume
)

func (d Decision) String() string {
	if d == Consume {
		return "consume"
	}
	return "forward"
}

// SignalKind identifies a chord signal.
type SignalKind int

const (
	ChordPressed SignalKind = iota
	ChordReleased
)

func (k SignalKind) String() string {
	if k == ChordReleased {
		return "ChordReleased"
	}
	return "ChordPressed"
}

// Signal is emitted once per physical press and once per release.
type Signal struct {
	Kind SignalKind
	At   time.Time
}

// Handler is what a Tap calls for each intercepted event.
type Handler interface {
	Handle(ev KeyEvent) Decision
}

// Tap installs a Handler as a system-wide keyboard hook.
type Tap interface {
	// Install returns ErrFilterUnavailable (possibly wrapped) when the OS
	// denies the hook.
	Install(h Handler) error
	Uninstall() error
}

// Rebinder is implemented by taps that register the chord with the OS
// themselves and must be told when it changes.
type Rebinder interface {
	Rebind(chord shortcut.Chord) error
}

// Filter matches key events against the current chord.
type Filter struct {
	chord atomic.Pointer[shortcut.Chord]
	queue *Queue
	now   func() time.Time
}

// New creates a filter for chord.
func New(chord shortcut.Chord) *Filter {
	f := &Filter{
		queue: NewQueue(),
		now:   time.Now,
	}
	f.SetChord(chord)
	return f
}

// Chord returns the currently published chord.
func (f *Filter) Chord() shortcut.Chord {
	return *f.chord.Load()
}

// SetChord publishes a new chord snapshot. Events already in flight see
// either the old or the new chord, never a mix.
func (f *Filter) SetChord(chord shortcut.Chord) {
	c := chord
	f.chord.Store(&c)
}

// Signals returns the queue the filter emits into.
func (f *Filter) Signals() *Queue {
	return f.queue
}

// Handle classifies ev. A match is always consumed, repeats included; only a
// non-repeat key-down emits ChordPressed and every matching key-up emits
// ChordReleased.
func (f *Filter) Handle(ev KeyEvent) Decision {
	chord := f.chord.Load()
	if !chord.Matches(ev.KeyCode, ev.Modifiers) {
		return Forward
	}

	switch ev.Type {
	case KeyDown:
		if !ev.Repeat {
			f.queue.Push(Signal{Kind: ChordPressed, At: f.now()})
		}
	case KeyUp:
		f.queue.Push(Signal{Kind: ChordReleased, At: f.now()})
	}
	return Consume
}
