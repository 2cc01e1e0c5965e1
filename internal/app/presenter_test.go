package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"parrot/internal/engine"
	"parrot/internal/tray"
)

type fakeTray struct {
	mu     sync.Mutex
	states []tray.State
}

func (f *fakeTray) SetState(s tray.State) {
	f.mu.Lock()
	f.states = append(f.states, s)
	f.mu.Unlock()
}

func (f *fakeTray) last() tray.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.states) == 0 {
		return -1
	}
	return f.states[len(f.states)-1]
}

type fakeIndicator struct {
	mu      sync.Mutex
	visible bool
	shows   int
}

func (f *fakeIndicator) Show() {
	f.mu.Lock()
	f.visible = true
	f.shows++
	f.mu.Unlock()
}

func (f *fakeIndicator) Hide() {
	f.mu.Lock()
	f.visible = false
	f.mu.Unlock()
}

func (f *fakeIndicator) isVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

func TestPresenterApply(t *testing.T) {
	tests := []struct {
		name        string
		blocked     bool
		state       engine.State
		wantTray    tray.State
		wantVisible bool
	}{
		{name: "recording", state: engine.Recording, wantTray: tray.StateRecording, wantVisible: true},
		{name: "playing", state: engine.Playing, wantTray: tray.StatePlaying},
		{name: "idle", state: engine.Idle, wantTray: tray.StateIdle},
		{name: "idle without filter", blocked: true, state: engine.Idle, wantTray: tray.StatePermissionMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ind := &fakeTray{}, &fakeIndicator{}
			p := newPresenter(tr, ind)
			p.blocked.Store(tt.blocked)
			ind.Show()

			p.apply(tt.state)

			if got := tr.last(); got != tt.wantTray {
				t.Fatalf("tray state = %v, want %v", got, tt.wantTray)
			}
			if got := ind.isVisible(); got != tt.wantVisible {
				t.Fatalf("indicator visible = %v, want %v", got, tt.wantVisible)
			}
		})
	}
}

func TestPresenterRunShowsLatestAndHidesOnStop(t *testing.T) {
	tr, ind := &fakeTray{}, &fakeIndicator{}
	p := newPresenter(tr, ind)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.run(ctx)
		close(done)
	}()

	p.push(engine.Recording)
	p.push(engine.Idle)
	p.push(engine.Playing)

	deadline := time.Now().Add(time.Second)
	for tr.last() != tray.StatePlaying {
		if time.Now().After(deadline) {
			t.Fatalf("latest state not applied, last %v", tr.last())
		}
		time.Sleep(time.Millisecond)
	}

	ind.Show()
	cancel()
	<-done
	if ind.isVisible() {
		t.Fatal("indicator still visible after stop")
	}
}

func TestPresenterPushCoalescesWithoutBlocking(t *testing.T) {
	tr, ind := &fakeTray{}, &fakeIndicator{}
	p := newPresenter(tr, ind)

	// Nothing drains: every push must still return.
	for i := 0; i < 1000; i++ {
		p.push(engine.Recording)
		p.push(engine.Playing)
	}
	p.push(engine.Idle)

	s, ok := p.take()
	if !ok || s != engine.Idle {
		t.Fatalf("take() = %v, %v; want idle, true", s, ok)
	}
	if _, ok := p.take(); ok {
		t.Fatal("state delivered twice")
	}
}

func TestPresenterSetBlocked(t *testing.T) {
	tr, ind := &fakeTray{}, &fakeIndicator{}
	p := newPresenter(tr, ind)

	p.setBlocked(true)
	s, ok := p.take()
	if !ok {
		t.Fatal("setBlocked did not schedule a redraw")
	}
	p.apply(s)
	if got := tr.last(); got != tray.StatePermissionMissing {
		t.Fatalf("tray state = %v, want permission missing", got)
	}

	p.push(engine.Recording)
	p.take()
	p.setBlocked(false)
	if s, _ := p.take(); s != engine.Recording {
		t.Fatalf("setBlocked replaced state with %v, want recording", s)
	}
}
