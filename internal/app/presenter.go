package app

import (
	"context"
	"sync"
	"sync/atomic"

	"parrot/internal/engine"
	"parrot/internal/tray"
)

type stateView interface {
	SetState(tray.State)
}

type indicatorView interface {
	Show()
	Hide()
}

// presenter переносит состояния движка в трей и индикатор вне горутины
// движка: Hide индикатора может ждать закрытия окна. Если интерфейс не
// успевает, промежуточные состояния схлопываются до последнего.
type presenter struct {
	tray      stateView
	indicator indicatorView
	blocked   atomic.Bool // перехват клавиатуры недоступен

	mu      sync.Mutex
	latest  engine.State
	pending bool
	wake    chan struct{}
}

func newPresenter(tray stateView, indicator indicatorView) *presenter {
	return &presenter{
		tray:      tray,
		indicator: indicator,
		wake:      make(chan struct{}, 1),
	}
}

// push запоминает состояние и никогда не блокирует.
func (p *presenter) push(s engine.State) {
	p.mu.Lock()
	p.latest = s
	p.pending = true
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// take возвращает последнее непоказанное состояние.
func (p *presenter) take() (engine.State, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.latest, p.pending
	p.pending = false
	return s, ok
}

// setBlocked помечает, что аккорд не работает, и перерисовывает текущее
// состояние.
func (p *presenter) setBlocked(blocked bool) {
	p.blocked.Store(blocked)
	p.mu.Lock()
	s := p.latest
	p.mu.Unlock()
	p.push(s)
}

func (p *presenter) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.indicator.Hide()
			return
		case <-p.wake:
			if s, ok := p.take(); ok {
				p.apply(s)
			}
		}
	}
}

func (p *presenter) apply(s engine.State) {
	switch s {
	case engine.Recording:
		p.tray.SetState(tray.StateRecording)
		p.indicator.Show()
	case engine.Playing:
		p.indicator.Hide()
		p.tray.SetState(tray.StatePlaying)
	default:
		p.indicator.Hide()
		if p.blocked.Load() {
			p.tray.SetState(tray.StatePermissionMissing)
		} else {
			p.tray.SetState(tray.StateIdle)
		}
	}
}
