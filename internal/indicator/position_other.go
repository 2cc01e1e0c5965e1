//go:build !linux

package indicator

// positionWindow is a no-op: macOS and Windows place new undecorated
// windows in the centre of the main screen.
func positionWindow(windowTitle string, width, height int) {}
