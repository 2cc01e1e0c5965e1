// Package hotkey содержит системные реализации перехвата клавиатуры для
// filter.Filter.
//
// На macOS это активный CGEventTap: он видит каждое событие клавиатуры и
// может его поглотить. На остальных платформах аккорд регистрируется как
// глобальная горячая клавиша через golang.design/x/hotkey.
package hotkey

import (
	"golang.design/x/hotkey/mainthread"

	"parrot/internal/filter"
	"parrot/internal/shortcut"
)

// Tap - перехватчик, который можно установить и перепривязать.
type Tap interface {
	filter.Tap
	filter.Rebinder
}

// NewTap создаёт перехватчик для текущей платформы.
func NewTap(chord shortcut.Chord) Tap {
	return newTap(chord)
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}
