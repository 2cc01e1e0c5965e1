//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"

	"parrot/internal/shortcut"
)

// modifierMap маппинг shortcut.Modifier -> hotkey.Modifier для Linux
var modifierMap = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModControl: hotkey.ModCtrl,
	shortcut.ModShift:   hotkey.ModShift,
	shortcut.ModOption:  hotkey.Mod1, // Alt = Mod1 на X11
	shortcut.ModCommand: hotkey.Mod4, // Super/Win = Mod4 на X11
}
