//go:build !darwin

package permission

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// Check reports Granted: these platforms have no per-app gate for global
// hotkeys or audio capture.
func Check(c Capability) Status {
	return Granted
}

// PromptInterception is a no-op outside macOS.
func PromptInterception() {}

func requestMicrophone(done func(Status)) {
	done(Granted)
}

// OpenSettings opens the OS privacy settings where the platform has them.
func OpenSettings(c Capability) error {
	if runtime.GOOS != "windows" || c != Microphone {
		return errors.ErrUnsupported
	}
	if err := exec.Command("cmd", "/c", "start", "ms-settings:privacy-microphone").Start(); err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	return nil
}
