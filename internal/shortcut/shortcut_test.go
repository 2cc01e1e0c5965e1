package shortcut

import "testing"

func TestChordMatches(t *testing.T) {
	chord := Chord{KeyCode: DefaultKeyCode, Modifiers: ModCommand | ModShift}

	tests := []struct {
		name    string
		keyCode uint16
		mods    Modifier
		want    bool
	}{
		{name: "exact", keyCode: DefaultKeyCode, mods: ModCommand | ModShift, want: true},
		{name: "caps lock ignored", keyCode: DefaultKeyCode, mods: ModCommand | ModShift | ModCapsLock, want: true},
		{name: "fn and numpad ignored", keyCode: DefaultKeyCode, mods: ModCommand | ModShift | ModFunction | ModNumPad, want: true},
		{name: "extra option", keyCode: DefaultKeyCode, mods: ModCommand | ModShift | ModOption, want: false},
		{name: "missing shift", keyCode: DefaultKeyCode, mods: ModCommand, want: false},
		{name: "no modifiers", keyCode: DefaultKeyCode, mods: 0, want: false},
		{name: "other key", keyCode: DefaultKeyCode + 1, mods: ModCommand | ModShift, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chord.Matches(tt.keyCode, tt.mods); got != tt.want {
				t.Fatalf("Matches(%d, %b) = %v, want %v", tt.keyCode, tt.mods, got, tt.want)
			}
		})
	}
}

func TestChordValid(t *testing.T) {
	if (Chord{KeyCode: DefaultKeyCode}).Valid() {
		t.Fatal("chord without modifiers must be invalid")
	}
	if (Chord{KeyCode: DefaultKeyCode, Modifiers: ModCapsLock}).Valid() {
		t.Fatal("caps lock alone must not make a chord valid")
	}
	if !Default().Valid() {
		t.Fatal("default chord must be valid")
	}
}

func TestChordString(t *testing.T) {
	chord := Chord{KeyCode: DefaultKeyCode, Modifiers: ModCommand | ModShift | ModControl | ModOption}
	if got, want := chord.String(), "⌃⌥⇧⌘Z"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := KeyName(0xFFFF); got != "?" {
		t.Fatalf("KeyName(unknown) = %q, want ?", got)
	}
}

func TestModifierNames(t *testing.T) {
	got := (ModShift | ModControl).Names()
	if len(got) != 2 || got[0] != "Control" || got[1] != "Shift" {
		t.Fatalf("Names() = %v", got)
	}
}

func TestKeyCodeLookup(t *testing.T) {
	code, ok := KeyCode("z")
	if !ok || code != DefaultKeyCode {
		t.Fatalf("KeyCode(z) = %d, %v", code, ok)
	}
	if _, ok := KeyCode("nope"); ok {
		t.Fatal("unexpected key code for unknown name")
	}
	keys := AvailableKeys()
	if len(keys) != 26+3+12 {
		t.Fatalf("AvailableKeys() returned %d keys", len(keys))
	}
}
