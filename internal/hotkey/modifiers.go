package hotkey

import (
	"golang.design/x/hotkey"

	"parrot/internal/shortcut"
)

// nativeModifiers конвертирует модификаторы аккорда в порядке ⌃⌥⇧⌘.
func nativeModifiers(m shortcut.Modifier) []hotkey.Modifier {
	mods := make([]hotkey.Modifier, 0, 4)
	for _, mod := range shortcut.All() {
		if !m.Has(mod) {
			continue
		}
		if native, ok := modifierMap[mod]; ok {
			mods = append(mods, native)
		}
	}
	return mods
}
