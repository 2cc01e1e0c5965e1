package hotkey

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.design/x/hotkey"

	"parrot/internal/filter"
	"parrot/internal/hotkey/keyevent"
	"parrot/internal/shortcut"
)

// unregisterTimeout ограничивает Unregister, который может зависнуть на X11.
const unregisterTimeout = 500 * time.Millisecond

// Registered реализует filter.Tap через глобальную горячую клавишу.
// Зарегистрированная клавиша всегда поглощается системой, поэтому решение
// обработчика игнорируется.
type Registered struct {
	mu      sync.Mutex
	hk      *hotkey.Hotkey
	chord   shortcut.Chord
	handler filter.Handler
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewRegistered создаёт перехватчик для аккорда.
func NewRegistered(chord shortcut.Chord) *Registered {
	return &Registered{chord: chord}
}

// Install регистрирует горячую клавишу и начинает доставлять события в h.
func (r *Registered) Install(h filter.Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handler != nil {
		return errors.New("hotkey: already installed")
	}
	if err := r.register(r.chord, h); err != nil {
		return err
	}
	r.handler = h
	return nil
}

// Uninstall снимает регистрацию.
func (r *Registered) Uninstall() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.unregister()
	r.handler = nil
	return err
}

// Rebind меняет аккорд. Если перехватчик не установлен, аккорд просто
// запоминается.
func (r *Registered) Rebind(chord shortcut.Chord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if chord == r.chord && r.hk != nil {
		return nil
	}
	if r.handler == nil {
		r.chord = chord
		return nil
	}

	if err := r.unregister(); err != nil {
		log.Printf("Ошибка отмены горячей клавиши: %v", err)
	}
	if err := r.register(chord, r.handler); err != nil {
		// Возвращаем прежний аккорд, чтобы не остаться без перехвата
		if restoreErr := r.register(r.chord, r.handler); restoreErr != nil {
			log.Printf("Не удалось восстановить %s: %v", r.chord, restoreErr)
		}
		return err
	}
	r.chord = chord
	return nil
}

func (r *Registered) register(chord shortcut.Chord, h filter.Handler) error {
	log.Printf("Регистрация горячей клавиши: %s", chord)

	hk := hotkey.New(nativeModifiers(chord.Modifiers), hotkey.Key(chord.KeyCode))
	if err := hk.Register(); err != nil {
		return fmt.Errorf("%w: register %s: %w", filter.ErrFilterUnavailable, chord, err)
	}

	r.hk = hk
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	go func(stop, done chan struct{}) {
		defer close(done)
		keyevent.Relay(stop, hk.Keydown(), hk.Keyup(), chord, h)
	}(r.stopCh, r.doneCh)

	log.Printf("Горячая клавиша зарегистрирована: %s", chord)
	return nil
}

func (r *Registered) unregister() error {
	if r.hk == nil {
		return nil
	}
	close(r.stopCh)
	<-r.doneCh

	hk := r.hk
	r.hk, r.stopCh, r.doneCh = nil, nil, nil

	done := make(chan error, 1)
	go func() { done <- hk.Unregister() }()
	select {
	case err := <-done:
		return err
	case <-time.After(unregisterTimeout):
		log.Printf("Hotkey unregister timeout")
		return nil
	}
}
