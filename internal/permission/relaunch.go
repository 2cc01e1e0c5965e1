package permission

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ProcessRelauncher starts a new instance of the current executable and then
// asks the running one to quit.
type ProcessRelauncher struct {
	// Args are passed to the new instance, usually os.Args[1:].
	Args []string
	// Quit terminates the current instance.
	Quit func()
}

// Relaunch implements Relauncher.
func (r *ProcessRelauncher) Relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	name, args := launchCommand(runtime.GOOS, exe, r.Args)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	log.Printf("permission: started new instance (pid %d)", cmd.Process.Pid)
	_ = cmd.Process.Release()

	if r.Quit != nil {
		r.Quit()
	}
	return nil
}

// launchCommand returns how to start exe again. A macOS .app bundle is
// opened through LaunchServices so it keeps its identity for privacy checks.
func launchCommand(goos, exe string, args []string) (string, []string) {
	if goos == "darwin" {
		if idx := strings.Index(exe, ".app/"); idx != -1 {
			out := []string{"-n", exe[:idx+4]}
			if len(args) > 0 {
				out = append(out, "--args")
				out = append(out, args...)
			}
			return "open", out
		}
	}
	return exe, args
}
