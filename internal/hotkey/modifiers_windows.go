//go:build windows

package hotkey

import (
	"golang.design/x/hotkey"

	"parrot/internal/shortcut"
)

// modifierMap маппинг shortcut.Modifier -> hotkey.Modifier для Windows
var modifierMap = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModControl: hotkey.ModCtrl,
	shortcut.ModShift:   hotkey.ModShift,
	shortcut.ModOption:  hotkey.ModAlt,
	shortcut.ModCommand: hotkey.ModWin,
}
