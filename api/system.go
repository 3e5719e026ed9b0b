package emucore

// Standard d-pad button bit positions (always bits 0-3).
const (
	ButtonUp    = 0
	ButtonDown  = 1
	ButtonLeft  = 2
	ButtonRight = 3
)

// Button describes a system-specific button with its display name
// and bit position in the input bitmask.
type Button struct {
	Name       string
	ID         int    // Bit position in the uint32 bitmask (4+)
	DefaultKey string // Default keyboard key (e.g., "J", "Enter")
	DefaultPad string // Default gamepad button (e.g., "A", "Start")
}

// SystemInfo describes an emulator system to the shell.
type SystemInfo struct {
	Name        string
	ConsoleName string
	Extensions  []string // ROM file extensions, e.g. [".sms"]
	SampleRate  int
	Buttons     []Button
	Players     int
	DataDirName string
}

// Factory creates emulation sessions and provides system metadata.
type Factory interface {
	// SystemInfo returns system metadata for shell configuration.
	SystemInfo() SystemInfo

	// Create creates a new session with the given ROM data.
	Create(rom []byte) (Session, error)
}
