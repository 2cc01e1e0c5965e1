//go:build windows

package shortcut

// DefaultKeyCode is the Win32 virtual-key code of Z.
const DefaultKeyCode uint16 = 0x5A

// keyNames maps Win32 virtual-key codes to display names.
var keyNames = map[uint16]string{}

var keyOrder []uint16

func init() {
	for c := uint16('A'); c <= 'Z'; c++ {
		keyNames[c] = string(rune(c))
		keyOrder = append(keyOrder, c)
	}
	keyNames[0x20] = "Space"
	keyNames[0x0D] = "Return"
	keyNames[0x09] = "Tab"
	keyOrder = append(keyOrder, 0x20, 0x0D, 0x09)
	for i := uint16(0); i < 12; i++ {
		keyNames[0x70+i] = fKey(i)
		keyOrder = append(keyOrder, 0x70+i)
	}
}
