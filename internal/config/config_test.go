package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"parrot/internal/shortcut"
)

func TestNewMissingFileUsesDefaults(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "config.yaml"))
	if got := c.Snapshot(); got != Defaults() {
		t.Fatalf("Snapshot() = %+v, want defaults", got)
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.PlaybackDelay != 500*time.Millisecond {
		t.Fatalf("default PlaybackDelay = %v, want 500ms", d.PlaybackDelay)
	}
	if d.Shortcut != shortcut.Default() || !d.Shortcut.Modifiers.Has(shortcut.ModCommand) || !d.Shortcut.Modifiers.Has(shortcut.ModShift) {
		t.Fatalf("default Shortcut = %v, want Command+Shift chord", d.Shortcut)
	}
	if !d.Notifications {
		t.Fatal("notifications must be on by default")
	}
}

func TestNewParsesFile(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want func(Snapshot) Snapshot
	}{
		{
			name: "full",
			raw: `playback_delay: 1.5
shortcut:
  key_code: 49
  modifiers: 9
input_device: USB Mic
notifications: false
ui_language: ru
`,
			want: func(Snapshot) Snapshot {
				return Snapshot{
					PlaybackDelay: 1500 * time.Millisecond,
					Shortcut:      shortcut.Chord{KeyCode: 49, Modifiers: shortcut.ModCommand | shortcut.ModControl},
					InputDevice:   "USB Mic",
					Notifications: false,
					UILanguage:    "ru",
				}
			},
		},
		{
			name: "partial keeps defaults",
			raw:  "input_device: Built-in\n",
			want: func(d Snapshot) Snapshot {
				d.InputDevice = "Built-in"
				return d
			},
		},
		{
			name: "delay clamped",
			raw:  "playback_delay: 42\n",
			want: func(d Snapshot) Snapshot {
				d.PlaybackDelay = MaxPlaybackDelay
				return d
			},
		},
		{
			name: "negative delay clamped",
			raw:  "playback_delay: -1\n",
			want: func(d Snapshot) Snapshot {
				d.PlaybackDelay = 0
				return d
			},
		},
		{
			name: "empty modifiers fall back",
			raw:  "shortcut:\n  key_code: 1\n  modifiers: 0\n",
			want: func(d Snapshot) Snapshot { return d },
		},
		{
			name: "malformed",
			raw:  "playback_delay: [oops\n",
			want: func(d Snapshot) Snapshot { return d },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.raw), 0o600); err != nil {
				t.Fatal(err)
			}
			got := New(path).Snapshot()
			if want := tt.want(Defaults()); got != want {
				t.Fatalf("Snapshot() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := New(path)

	chord := shortcut.Chord{KeyCode: 3, Modifiers: shortcut.ModOption | shortcut.ModShift}
	if err := c.SetShortcut(chord); err != nil {
		t.Fatalf("SetShortcut() = %v", err)
	}
	c.SetPlaybackDelay(2 * time.Second)
	c.SetInputDevice("USB Mic")
	c.SetUILanguage("ru")
	if c.ToggleNotifications() {
		t.Fatal("ToggleNotifications() should disable notifications")
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("setters must not write the file")
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	if got, want := New(path).Snapshot(), c.Snapshot(); got != want {
		t.Fatalf("reloaded %+v, want %+v", got, want)
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".config.yaml.tmp.*"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func TestSetShortcutRejectsEmptyModifiers(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "config.yaml"))
	before := c.Shortcut()

	for _, mods := range []shortcut.Modifier{0, shortcut.ModCapsLock, shortcut.ModFunction} {
		err := c.SetShortcut(shortcut.Chord{KeyCode: 1, Modifiers: mods})
		if !errors.Is(err, ErrConfigurationInvalid) {
			t.Fatalf("SetShortcut(mods=%b) = %v, want ErrConfigurationInvalid", mods, err)
		}
	}
	if c.Shortcut() != before {
		t.Fatalf("shortcut changed to %v after rejected update", c.Shortcut())
	}
}

func TestSetShortcutDropsIgnoredModifiers(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "config.yaml"))
	err := c.SetShortcut(shortcut.Chord{KeyCode: 1, Modifiers: shortcut.ModShift | shortcut.ModCapsLock})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Shortcut().Modifiers; got != shortcut.ModShift {
		t.Fatalf("modifiers = %b, want shift only", got)
	}
}

func TestWatchReportsExternalEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := New(path)
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Snapshot, 4)
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx, func(s Snapshot) { got <- s }) }()

	// Let the watcher attach before editing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("playback_delay: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-got:
		if s.PlaybackDelay != 2*time.Second {
			t.Fatalf("reloaded delay = %v, want 2s", s.PlaybackDelay)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after external edit")
	}
	if c.PlaybackDelay() != 2*time.Second {
		t.Fatalf("PlaybackDelay() = %v after reload", c.PlaybackDelay())
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Watch() = %v, want context.Canceled", err)
	}
}

func TestWatchIgnoresOwnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := New(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Snapshot, 4)
	go func() { _ = c.Watch(ctx, func(s Snapshot) { got <- s }) }()

	time.Sleep(100 * time.Millisecond)
	c.SetPlaybackDelay(time.Second)
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-got:
		t.Fatalf("own save reported as external edit: %+v", s)
	case <-time.After(3 * watchDebounce):
	}
}
