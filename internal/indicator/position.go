package indicator

import (
	"strconv"
	"strings"
)

// topMargin keeps the indicator clear of a top panel.
const topMargin = 48

// topCentre returns the window origin for a window centred horizontally
// near the top of the screen.
func topCentre(screenWidth, screenHeight, width, height int) (x, y int, ok bool) {
	if screenWidth <= 0 || screenHeight <= 0 || width > screenWidth || height+topMargin > screenHeight {
		return 0, 0, false
	}
	return (screenWidth - width) / 2, topMargin, true
}

// parseGeometry parses "W H" as printed by xdotool getdisplaygeometry.
func parseGeometry(s string) (width, height int) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, 0
	}
	width, errW := strconv.Atoi(parts[0])
	height, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil {
		return 0, 0
	}
	return width, height
}
