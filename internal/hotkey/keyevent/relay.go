// Package keyevent переводит системные уведомления о клавишах в
// filter.KeyEvent. Пакет не импортирует golang.design/x/hotkey и не требует
// дисплея.
package keyevent

import (
	"time"

	"parrot/internal/filter"
	"parrot/internal/shortcut"
)

// ReleaseGrace - сколько ждать keydown после keyup, прежде чем считать
// клавишу отпущенной. X11 присылает автоповтор парами keyup+keydown.
const ReleaseGrace = 40 * time.Millisecond

// Relay превращает события горячей клавиши в KeyEvent. Повторный keydown
// при зажатой клавише помечается как Repeat, keyup откладывается на
// ReleaseGrace, чтобы пара keyup+keydown автоповтора не разорвала запись.
func Relay[E any](stop <-chan struct{}, down, up <-chan E, chord shortcut.Chord, h filter.Handler) {
	var (
		held    bool
		timer   *time.Timer
		release <-chan time.Time
	)
	emit := func(typ filter.EventType, repeat bool) {
		h.Handle(filter.KeyEvent{
			Type:      typ,
			KeyCode:   chord.KeyCode,
			Modifiers: chord.Modifiers,
			Repeat:    repeat,
		})
	}
	cancelRelease := func() bool {
		if release == nil {
			return false
		}
		timer.Stop()
		release = nil
		return true
	}

	for {
		select {
		case <-stop:
			cancelRelease()
			if held {
				emit(filter.KeyUp, false)
			}
			return
		case _, ok := <-down:
			if !ok {
				return
			}
			if cancelRelease() {
				emit(filter.KeyDown, true)
				continue
			}
			emit(filter.KeyDown, held)
			held = true
		case _, ok := <-up:
			if !ok {
				return
			}
			if !held || release != nil {
				continue
			}
			timer = time.NewTimer(ReleaseGrace)
			release = timer.C
		case <-release:
			release = nil
			held = false
			emit(filter.KeyUp, false)
		}
	}
}
