package filter

import (
	"sync"
	"testing"

	"parrot/internal/shortcut"
)

var testChord = shortcut.Chord{KeyCode: 6, Modifiers: shortcut.ModCommand | shortcut.ModShift}

func kinds(signals []Signal) []SignalKind {
	out := make([]SignalKind, len(signals))
	for i, s := range signals {
		out[i] = s.Kind
	}
	return out
}

func TestHandleForwardsNonMatching(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
	}{
		{name: "other key", ev: KeyEvent{Type: KeyDown, KeyCode: 7, Modifiers: testChord.Modifiers}},
		{name: "extra option", ev: KeyEvent{Type: KeyDown, KeyCode: 6, Modifiers: testChord.Modifiers | shortcut.ModOption}},
		{name: "missing shift", ev: KeyEvent{Type: KeyDown, KeyCode: 6, Modifiers: shortcut.ModCommand}},
		{name: "bare key up", ev: KeyEvent{Type: KeyUp, KeyCode: 6}},
		{name: "repeat of other key", ev: KeyEvent{Type: KeyDown, KeyCode: 1, Repeat: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(testChord)
			if got := f.Handle(tt.ev); got != Forward {
				t.Fatalf("Handle() = %v, want forward", got)
			}
			if n := f.Signals().Len(); n != 0 {
				t.Fatalf("emitted %d signals, want 0", n)
			}
		})
	}
}

func TestHandleRepeatsEmitOnePress(t *testing.T) {
	f := New(testChord)

	down := KeyEvent{Type: KeyDown, KeyCode: 6, Modifiers: testChord.Modifiers}
	if got := f.Handle(down); got != Consume {
		t.Fatalf("first key-down = %v, want consume", got)
	}
	repeat := down
	repeat.Repeat = true
	for i := 0; i < 25; i++ {
		if got := f.Handle(repeat); got != Consume {
			t.Fatalf("repeat %d = %v, want consume", i, got)
		}
	}
	up := KeyEvent{Type: KeyUp, KeyCode: 6, Modifiers: testChord.Modifiers}
	if got := f.Handle(up); got != Consume {
		t.Fatalf("key-up = %v, want consume", got)
	}

	got := kinds(f.Signals().Drain())
	if len(got) != 2 || got[0] != ChordPressed || got[1] != ChordReleased {
		t.Fatalf("signals = %v, want [ChordPressed ChordReleased]", got)
	}
}

func TestHandleRepeatedKeyUpStillReleases(t *testing.T) {
	f := New(testChord)
	f.Handle(KeyEvent{Type: KeyUp, KeyCode: 6, Modifiers: testChord.Modifiers, Repeat: true})

	got := kinds(f.Signals().Drain())
	if len(got) != 1 || got[0] != ChordReleased {
		t.Fatalf("signals = %v, want [ChordReleased]", got)
	}
}

func TestHandleIgnoresCapsLock(t *testing.T) {
	f := New(testChord)
	ev := KeyEvent{Type: KeyDown, KeyCode: 6, Modifiers: testChord.Modifiers | shortcut.ModCapsLock}
	if got := f.Handle(ev); got != Consume {
		t.Fatalf("Handle() = %v, want consume", got)
	}
}

func TestSetChordPublishesSnapshot(t *testing.T) {
	f := New(testChord)
	next := shortcut.Chord{KeyCode: 49, Modifiers: shortcut.ModControl}
	f.SetChord(next)

	if f.Chord() != next {
		t.Fatalf("Chord() = %v, want %v", f.Chord(), next)
	}
	if got := f.Handle(KeyEvent{Type: KeyDown, KeyCode: 6, Modifiers: testChord.Modifiers}); got != Forward {
		t.Fatalf("old chord still matched after SetChord")
	}
	if got := f.Handle(KeyEvent{Type: KeyDown, KeyCode: 49, Modifiers: shortcut.ModControl}); got != Consume {
		t.Fatalf("new chord not matched after SetChord")
	}
}

func TestQueuePreservesOrderAcrossProducers(t *testing.T) {
	q := NewQueue()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			kind := ChordPressed
			if i%2 == 1 {
				kind = ChordReleased
			}
			q.Push(Signal{Kind: kind})
		}
	}()

	var got []Signal
	for len(got) < n {
		<-q.Ready()
		got = append(got, q.Drain()...)
	}
	wg.Wait()

	for i, s := range got {
		want := ChordPressed
		if i%2 == 1 {
			want = ChordReleased
		}
		if s.Kind != want {
			t.Fatalf("signal %d = %v, want %v", i, s.Kind, want)
		}
	}
}
