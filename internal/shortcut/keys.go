package shortcut

import "strconv"

// fKey returns "F1".."F12" for a zero-based index.
func fKey(i uint16) string {
	return "F" + strconv.Itoa(int(i)+1)
}
