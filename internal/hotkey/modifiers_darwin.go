//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"

	"parrot/internal/shortcut"
)

// modifierMap маппинг shortcut.Modifier -> hotkey.Modifier для macOS
var modifierMap = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModControl: hotkey.ModCtrl,
	shortcut.ModShift:   hotkey.ModShift,
	shortcut.ModOption:  hotkey.ModOption,
	shortcut.ModCommand: hotkey.ModCmd,
}
