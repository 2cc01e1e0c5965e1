//go:build linux

package indicator

import (
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// positionWindow moves the indicator to the top centre of the screen and
// keeps it above other windows. Requires xdotool; wmctrl or xprop are used
// for stacking when present.
func positionWindow(windowTitle string, width, height int) {
	// Give the window time to appear
	time.Sleep(100 * time.Millisecond)

	screenWidth, screenHeight := screenSize()
	x, y, ok := topCentre(screenWidth, screenHeight, width, height)
	if !ok {
		return
	}

	output, err := exec.Command("xdotool", "search", "--name", windowTitle).Output()
	if err != nil {
		return
	}
	windowIDs := strings.Fields(string(output))
	if len(windowIDs) == 0 {
		return
	}
	windowID := windowIDs[0]

	_ = exec.Command("xdotool", "windowmove", windowID, strconv.Itoa(x), strconv.Itoa(y)).Run()

	if err := exec.Command("wmctrl", "-i", "-r", windowID, "-b", "add,above").Run(); err != nil {
		_ = exec.Command("xprop", "-id", windowID, "-f", "_NET_WM_STATE", "32a",
			"-set", "_NET_WM_STATE", "_NET_WM_STATE_ABOVE").Run()
	}
}

// screenSize returns the display geometry reported by xdotool.
func screenSize() (width, height int) {
	output, err := exec.Command("xdotool", "getdisplaygeometry").Output()
	if err != nil {
		return 0, 0
	}
	return parseGeometry(string(output))
}
