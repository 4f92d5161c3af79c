// pkg/state/state.go

package state

import "sync/atomic"

// Switch holds the checking mode shared by every guarded function bound to it.
// Reads and writes are atomic; nothing in the call path blocks on it.
type Switch struct {
	enabled atomic.Bool
}

// Default is the process-wide switch. It starts enabled.
var Default = NewSwitch(true)

// NewSwitch returns a switch in the given mode.
func NewSwitch(enabled bool) *Switch {
	s := &Switch{}
	s.enabled.Store(enabled)
	return s
}

// Enable turns contract checking on.
func (s *Switch) Enable() {
	s.enabled.Store(true)
}

// Disable turns contract checking off.
func (s *Switch) Disable() {
	s.enabled.Store(false)
}

// Set stores the mode.
func (s *Switch) Set(enabled bool) {
	s.enabled.Store(enabled)
}

// Enabled reports whether contract checking is on.
func (s *Switch) Enabled() bool {
	return s.enabled.Load()
}

func (s *Switch) String() string {
	if s.Enabled() {
		return "enabled"
	}
	return "disabled"
}
