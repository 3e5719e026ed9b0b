package shell

// Mode represents a top-level state of the shell
type Mode int

const (
	// ModeMenu is the menu screen, and the ground state of the stack
	ModeMenu Mode = iota
	// ModeRunning is active emulation
	ModeRunning
	// ModeRewinding is the rewind session suspending active emulation
	ModeRewinding
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "Menu"
	case ModeRunning:
		return "Running"
	case ModeRewinding:
		return "Rewinding"
	default:
		return "Unknown"
	}
}

// ModeStack tracks the active mode plus any suspended modes beneath it.
// Pushing suspends the current mode, popping resumes it. The bottom entry
// is always ModeMenu and can never be popped, so Current is always valid.
type ModeStack struct {
	stack []Mode
}

// NewModeStack returns a stack with ModeMenu as the ground state.
func NewModeStack() *ModeStack {
	return &ModeStack{stack: []Mode{ModeMenu}}
}

// Current returns the active mode (top of the stack).
func (s *ModeStack) Current() Mode {
	return s.stack[len(s.stack)-1]
}

// Replace swaps the active mode without changing the stack depth.
// Used for the Menu <-> Running transition, which is a switch rather
// than a suspension.
func (s *ModeStack) Replace(m Mode) {
	s.stack[len(s.stack)-1] = m
}

// Push suspends the active mode and makes m the active mode.
func (s *ModeStack) Push(m Mode) {
	s.stack = append(s.stack, m)
}

// Pop discards the active mode, resuming the one beneath it. The ground
// entry is never popped; Pop reports whether a pop actually happened.
func (s *ModeStack) Pop() bool {
	if len(s.stack) <= 1 {
		return false
	}
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// Depth returns the number of entries on the stack.
func (s *ModeStack) Depth() int {
	return len(s.stack)
}
