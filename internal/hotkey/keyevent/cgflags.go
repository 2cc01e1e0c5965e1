package keyevent

import "parrot/internal/shortcut"

// Биты CGEventFlags.
const (
	cgFlagAlphaShift = 1 << 16
	cgFlagShift      = 1 << 17
	cgFlagControl    = 1 << 18
	cgFlagAlternate  = 1 << 19
	cgFlagCommand    = 1 << 20
	cgFlagNumericPad = 1 << 21
	cgFlagSecondaryF = 1 << 23
)

var cgFlagMap = []struct {
	flag uint64
	mod  shortcut.Modifier
}{
	{cgFlagCommand, shortcut.ModCommand},
	{cgFlagAlternate, shortcut.ModOption},
	{cgFlagShift, shortcut.ModShift},
	{cgFlagControl, shortcut.ModControl},
	{cgFlagAlphaShift, shortcut.ModCapsLock},
	{cgFlagSecondaryF, shortcut.ModFunction},
	{cgFlagNumericPad, shortcut.ModNumPad},
}

// ModifiersFromCGFlags переводит CGEventFlags в shortcut.Modifier.
func ModifiersFromCGFlags(flags uint64) shortcut.Modifier {
	var m shortcut.Modifier
	for _, f := range cgFlagMap {
		if flags&f.flag != 0 {
			m |= f.mod
		}
	}
	return m
}
