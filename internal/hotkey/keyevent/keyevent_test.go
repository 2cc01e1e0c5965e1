package keyevent

import (
	"sync"
	"testing"
	"time"

	"parrot/internal/filter"
	"parrot/internal/shortcut"
)

type recorder struct {
	mu     sync.Mutex
	events []filter.KeyEvent
}

func (r *recorder) Handle(ev filter.KeyEvent) filter.Decision {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	return filter.Consume
}

func (r *recorder) get() []filter.KeyEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]filter.KeyEvent(nil), r.events...)
}

type relayHarness struct {
	down, up chan struct{}
	stop     chan struct{}
	done     chan struct{}
	rec      *recorder
}

func startRelay(chord shortcut.Chord) *relayHarness {
	h := &relayHarness{
		down: make(chan struct{}),
		up:   make(chan struct{}),
		stop: make(chan struct{}),
		done: make(chan struct{}),
		rec:  &recorder{},
	}
	go func() {
		defer close(h.done)
		Relay[struct{}](h.stop, h.down, h.up, chord, h.rec)
	}()
	return h
}

func (h *relayHarness) finish() {
	close(h.stop)
	<-h.done
}

func describe(events []filter.KeyEvent) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		s := "down"
		if ev.Type == filter.KeyUp {
			s = "up"
		}
		if ev.Repeat {
			s += "*"
		}
		out[i] = s
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRelayPressRelease(t *testing.T) {
	chord := shortcut.Default()
	h := startRelay(chord)

	h.down <- struct{}{}
	h.up <- struct{}{}
	time.Sleep(3 * ReleaseGrace)
	h.finish()

	events := h.rec.get()
	if got := describe(events); !equal(got, []string{"down", "up"}) {
		t.Fatalf("events = %v", got)
	}
	for _, ev := range events {
		if ev.KeyCode != chord.KeyCode || ev.Modifiers != chord.Modifiers {
			t.Fatalf("event %+v does not carry the chord", ev)
		}
	}
}

func TestRelayAutorepeatPairsBecomeRepeats(t *testing.T) {
	h := startRelay(shortcut.Default())

	h.down <- struct{}{}
	for i := 0; i < 3; i++ {
		h.up <- struct{}{}
		h.down <- struct{}{}
	}
	h.up <- struct{}{}
	time.Sleep(3 * ReleaseGrace)
	h.finish()

	want := []string{"down", "down*", "down*", "down*", "up"}
	if got := describe(h.rec.get()); !equal(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestRelayStopWhileHeldReleases(t *testing.T) {
	h := startRelay(shortcut.Default())

	h.down <- struct{}{}
	h.finish()

	if got := describe(h.rec.get()); !equal(got, []string{"down", "up"}) {
		t.Fatalf("events = %v", got)
	}
}

func TestRelayIgnoresStrayKeyUp(t *testing.T) {
	h := startRelay(shortcut.Default())

	h.up <- struct{}{}
	time.Sleep(3 * ReleaseGrace)
	h.finish()

	if got := h.rec.get(); len(got) != 0 {
		t.Fatalf("events = %v, want none", describe(got))
	}
}

func TestModifiersFromCGFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags uint64
		want  shortcut.Modifier
	}{
		{name: "none", flags: 0, want: 0},
		{name: "command shift", flags: cgFlagCommand | cgFlagShift, want: shortcut.ModCommand | shortcut.ModShift},
		{name: "caps lock kept", flags: cgFlagAlphaShift | cgFlagControl, want: shortcut.ModCapsLock | shortcut.ModControl},
		{name: "fn and numpad", flags: cgFlagSecondaryF | cgFlagNumericPad, want: shortcut.ModFunction | shortcut.ModNumPad},
		{name: "device bits ignored", flags: cgFlagAlternate | 0x20, want: shortcut.ModOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModifiersFromCGFlags(tt.flags); got != tt.want {
				t.Fatalf("ModifiersFromCGFlags(%#x) = %b, want %b", tt.flags, got, tt.want)
			}
		})
	}
}
