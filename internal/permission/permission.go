// Package permission tracks the OS privileges the app depends on and gates
// installation of the input filter on the interception privilege.
package permission

import (
	"errors"
	"sync"
)

// ErrMicrophoneDenied is returned while microphone capture is not permitted.
var ErrMicrophoneDenied = errors.New("microphone access denied")

// Status is the state of one privilege.
type Status int

const (
	Unknown Status = iota
	Granted
	Denied
)

func (s Status) String() string {
	switch s {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// Capability names a privilege.
type Capability int

const (
	Microphone Capability = iota
	InputInterception
)

func (c Capability) String() string {
	switch c {
	case Microphone:
		return "microphone"
	case InputInterception:
		return "input interception"
	default:
		return "unknown"
	}
}

// Capabilities returns every capability in display order.
func Capabilities() []Capability {
	return []Capability{Microphone, InputInterception}
}

// CheckFunc queries the OS for the current status of a capability. It must
// have no side effects.
type CheckFunc func(Capability) Status

// Monitor caches the last known status per capability.
type Monitor struct {
	check CheckFunc

	mu       sync.RWMutex
	statuses map[Capability]Status
	onChange []func(Capability, Status)
}

// NewMonitor creates a monitor. A nil check uses the platform checker.
func NewMonitor(check CheckFunc) *Monitor {
	if check == nil {
		check = Check
	}
	return &Monitor{
		check:    check,
		statuses: make(map[Capability]Status),
	}
}

// Status returns the cached status.
func (m *Monitor) Status(c Capability) Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statuses[c]
}

// Set records a status, e.g. the answer to a microphone request.
func (m *Monitor) Set(c Capability, s Status) {
	m.mu.Lock()
	prev := m.statuses[c]
	m.statuses[c] = s
	listeners := append([]func(Capability, Status){}, m.onChange...)
	m.mu.Unlock()

	if prev == s {
		return
	}
	for _, fn := range listeners {
		fn(c, s)
	}
}

// Refresh re-queries every capability.
func (m *Monitor) Refresh() {
	for _, c := range Capabilities() {
		m.Set(c, m.check(c))
	}
}

// OnChange registers a callback for status changes.
func (m *Monitor) OnChange(fn func(Capability, Status)) {
	m.mu.Lock()
	m.onChange = append(m.onChange, fn)
	m.mu.Unlock()
}

// Microphone returns ErrMicrophoneDenied when capture is known to be denied.
// Unknown is allowed through: the capture device reports its own error.
func (m *Monitor) Microphone() error {
	if m.Status(Microphone) == Denied {
		return ErrMicrophoneDenied
	}
	return nil
}

// RequestMicrophone asks the OS for microphone access once and records the
// answer. Returns immediately; the answer may arrive later.
func (m *Monitor) RequestMicrophone() {
	requestMicrophone(func(s Status) {
		m.Set(Microphone, s)
	})
}
