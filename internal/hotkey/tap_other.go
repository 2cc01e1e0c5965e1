//go:build !darwin

package hotkey

import "parrot/internal/shortcut"

func newTap(chord shortcut.Chord) Tap {
	return NewRegistered(chord)
}
