package permission

import (
	"errors"
	"reflect"
	"testing"
)

func TestMonitorMicrophone(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   error
	}{
		{name: "unknown", status: Unknown, want: nil},
		{name: "granted", status: Granted, want: nil},
		{name: "denied", status: Denied, want: ErrMicrophoneDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor(func(Capability) Status { return tt.status })
			m.Refresh()
			if err := m.Microphone(); !errors.Is(err, tt.want) {
				t.Fatalf("Microphone() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMonitorOnChange(t *testing.T) {
	status := Denied
	m := NewMonitor(func(Capability) Status { return status })

	var changes []Status
	m.OnChange(func(c Capability, s Status) {
		if c == InputInterception {
			changes = append(changes, s)
		}
	})

	m.Refresh()
	m.Refresh()
	status = Granted
	m.Refresh()

	if want := []Status{Denied, Granted}; !reflect.DeepEqual(changes, want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	if m.Status(InputInterception) != Granted {
		t.Fatalf("Status() = %s", m.Status(InputInterception))
	}
}

func TestLaunchCommand(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		exe      string
		args     []string
		wantName string
		wantArgs []string
	}{
		{
			name:     "bundle",
			goos:     "darwin",
			exe:      "/Applications/Parrot.app/Contents/MacOS/parrot",
			wantName: "open",
			wantArgs: []string{"-n", "/Applications/Parrot.app"},
		},
		{
			name:     "bundle with args",
			goos:     "darwin",
			exe:      "/Applications/Parrot.app/Contents/MacOS/parrot",
			args:     []string{"-config", "/tmp/c.yaml"},
			wantName: "open",
			wantArgs: []string{"-n", "/Applications/Parrot.app", "--args", "-config", "/tmp/c.yaml"},
		},
		{
			name:     "bare binary on darwin",
			goos:     "darwin",
			exe:      "/usr/local/bin/parrot",
			args:     []string{"-config", "x"},
			wantName: "/usr/local/bin/parrot",
			wantArgs: []string{"-config", "x"},
		},
		{
			name:     "linux",
			goos:     "linux",
			exe:      "/opt/Parrot.app/parrot",
			wantName: "/opt/Parrot.app/parrot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args := launchCommand(tt.goos, tt.exe, tt.args)
			if name != tt.wantName {
				t.Fatalf("name = %q, want %q", name, tt.wantName)
			}
			if len(args) != 0 || len(tt.wantArgs) != 0 {
				if !reflect.DeepEqual(args, tt.wantArgs) {
					t.Fatalf("args = %q, want %q", args, tt.wantArgs)
				}
			}
		})
	}
}
