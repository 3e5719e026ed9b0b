package emucore

// FrameSize is the native framebuffer size of a core, in pixels.
type FrameSize struct {
	Width  int
	Height int
}

// StateConfig carries the storage settings a core needs to locate its
// save state files.
type StateConfig struct {
	// SaveDir is the directory state files are written to.
	SaveDir string
}

// Session is a running emulation instance. The shell drives it once per
// tick and calls into it in response to hotkeys. All methods are invoked
// from the shell's single update goroutine.
type Session interface {
	// Reset performs a hard reset of the emulated machine.
	Reset()

	// RunFrame executes one frame of emulation.
	RunFrame()

	// FrameBuffer returns the current frame as RGBA pixel data,
	// Width*Height*4 bytes.
	FrameBuffer() []byte

	// FrameBufferSize returns the native framebuffer dimensions.
	FrameBufferSize() FrameSize

	// AudioSamples returns stereo 16-bit PCM samples for the last frame.
	AudioSamples() []int16

	// SetButtons sets controller state as a button bitmask for the
	// given player.
	SetButtons(player int, buttons uint32)

	// SaveStateSlot writes the machine state to the numbered slot.
	SaveStateSlot(slot uint, cfg StateConfig) error

	// LoadStateSlot restores the machine state from the numbered slot.
	// On error the session must be left in its prior state.
	LoadStateSlot(slot uint, cfg StateConfig) error

	// PushAutoSave records an automatic restore point. The shell calls
	// this before entering rewind.
	PushAutoSave()

	// Close releases any resources held by the session.
	Close()
}

// SaveStater enables rewind. Detected on the session at launch; rewind
// is unavailable for cores that don't implement it.
type SaveStater interface {
	// Serialize captures the complete machine state.
	Serialize() ([]byte, error)

	// Deserialize restores machine state from previously serialized data.
	Deserialize(data []byte) error
}
