//go:build !darwin && !windows

package shortcut

// DefaultKeyCode is the X11 keysym of z.
const DefaultKeyCode uint16 = 0x007a

// keyNames maps X11 keysyms to display names.
var keyNames = map[uint16]string{}

var keyOrder []uint16

func init() {
	for c := uint16('a'); c <= 'z'; c++ {
		keyNames[c] = string(rune(c - 'a' + 'A'))
		keyOrder = append(keyOrder, c)
	}
	keyNames[0x0020] = "Space"
	keyNames[0xff0d] = "Return"
	keyNames[0xff09] = "Tab"
	keyOrder = append(keyOrder, 0x0020, 0xff0d, 0xff09)
	for i := uint16(0); i < 12; i++ {
		keyNames[0xffbe+i] = fKey(i)
		keyOrder = append(keyOrder, 0xffbe+i)
	}
}
