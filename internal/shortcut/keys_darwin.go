//go:build darwin

package shortcut

// DefaultKeyCode is the macOS virtual key code of Z.
const DefaultKeyCode uint16 = 6

// keyNames maps macOS virtual key codes (kVK_*) to display names.
var keyNames = map[uint16]string{
	0: "A", 11: "B", 8: "C", 2: "D", 14: "E", 3: "F", 5: "G", 4: "H", 34: "I",
	38: "J", 40: "K", 37: "L", 46: "M", 45: "N", 31: "O", 35: "P", 12: "Q",
	15: "R", 1: "S", 17: "T", 32: "U", 9: "V", 13: "W", 7: "X", 16: "Y", 6: "Z",
	49: "Space", 36: "Return", 48: "Tab",
	122: "F1", 120: "F2", 99: "F3", 118: "F4", 96: "F5", 97: "F6",
	98: "F7", 100: "F8", 101: "F9", 109: "F10", 103: "F11", 111: "F12",
}

var keyOrder = []uint16{
	0, 11, 8, 2, 14, 3, 5, 4, 34, 38, 40, 37, 46, 45, 31, 35, 12, 15, 1, 17, 32, 9, 13, 7, 16, 6,
	49, 36, 48,
	122, 120, 99, 118, 96, 97, 98, 100, 101, 109, 103, 111,
}
