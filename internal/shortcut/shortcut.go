// Package shortcut describes the push-to-talk chord: one key code plus an
// exact set of modifier keys.
package shortcut

import "strings"

// Modifier is a bitset of modifier keys as reported by an input event.
type Modifier uint32

const (
	ModCommand Modifier = 1 << iota
	ModOption
	ModShift
	ModControl

	// Modifiers below are reported by hooks but never take part in matching.
	ModCapsLock
	ModFunction
	ModNumPad
)

// Relevant is the subset of modifiers a chord is compared against.
const Relevant = ModCommand | ModOption | ModShift | ModControl

// Has reports whether every bit of other is set in m.
func (m Modifier) Has(other Modifier) bool {
	return m&other == other
}

// RelevantOnly drops the modifiers that are ignored during matching.
func (m Modifier) RelevantOnly() Modifier {
	return m & Relevant
}

// String renders the modifiers in the order ⌃⌥⇧⌘.
func (m Modifier) String() string {
	var b strings.Builder
	if m.Has(ModControl) {
		b.WriteString("⌃")
	}
	if m.Has(ModOption) {
		b.WriteString("⌥")
	}
	if m.Has(ModShift) {
		b.WriteString("⇧")
	}
	if m.Has(ModCommand) {
		b.WriteString("⌘")
	}
	return b.String()
}

// Names returns the modifiers as words, e.g. ["Control", "Shift"].
func (m Modifier) Names() []string {
	names := make([]string, 0, 4)
	for _, mod := range All() {
		if m.Has(mod) {
			names = append(names, mod.Name())
		}
	}
	return names
}

// Name returns the word for a single modifier bit.
func (m Modifier) Name() string {
	switch m {
	case ModControl:
		return "Control"
	case ModOption:
		return "Option"
	case ModShift:
		return "Shift"
	case ModCommand:
		return "Command"
	default:
		return ""
	}
}

// All returns the relevant modifiers in display order.
func All() []Modifier {
	return []Modifier{ModControl, ModOption, ModShift, ModCommand}
}

// Chord is an immutable key code plus the exact relevant modifier set.
type Chord struct {
	KeyCode   uint16
	Modifiers Modifier
}

// Default returns the chord used when nothing is configured: Command+Shift+Z.
func Default() Chord {
	return Chord{KeyCode: DefaultKeyCode, Modifiers: ModCommand | ModShift}
}

// Valid reports whether the chord has at least one relevant modifier.
func (c Chord) Valid() bool {
	return c.Modifiers.RelevantOnly() != 0
}

// Matches reports whether a key code and raw modifiers select this chord.
// Non-relevant modifiers such as Caps Lock are ignored, the rest must be equal.
func (c Chord) Matches(keyCode uint16, raw Modifier) bool {
	return keyCode == c.KeyCode && raw.RelevantOnly() == c.Modifiers.RelevantOnly()
}

// String renders the chord like ⌃⇧Z.
func (c Chord) String() string {
	return c.Modifiers.String() + KeyName(c.KeyCode)
}

// KeyName returns a display name for a platform key code, "?" when unknown.
func KeyName(code uint16) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return "?"
}

// KeyCode looks a key code up by its display name.
func KeyCode(name string) (uint16, bool) {
	for code, n := range keyNames {
		if strings.EqualFold(n, name) {
			return code, true
		}
	}
	return 0, false
}

// AvailableKeys returns the display names of all known keys, sorted as in
// keyOrder.
func AvailableKeys() []string {
	out := make([]string, 0, len(keyOrder))
	for _, code := range keyOrder {
		out = append(out, keyNames[code])
	}
	return out
}
