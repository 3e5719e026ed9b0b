package storage

import "github.com/thomas-k-cameron/meru/shell/hotkey"

// Config represents the shell configuration stored in config.json
type Config struct {
	Version          int             `json:"version"`
	Hotkeys          hotkey.Bindings `json:"hotkeys"`          // Ordered action -> binding tree list
	Scaling          int             `json:"scaling"`          // Integer window scale factor, >= 1
	ShowFPS          bool            `json:"showFps"`          // Draw the FPS overlay
	FrameSkipOnTurbo int             `json:"frameSkipOnTurbo"` // Core frames per tick while turbo is held
	Audio            AudioConfig     `json:"audio"`
	Window           WindowConfig    `json:"window"`
	Rewind           RewindConfig    `json:"rewind"`
}

// AudioConfig contains audio-related settings
type AudioConfig struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// WindowConfig contains the window state persisted across runs
type WindowConfig struct {
	Fullscreen bool `json:"fullscreen"`
}

// RewindConfig contains rewind feature settings
type RewindConfig struct {
	Enabled      bool `json:"enabled"`      // Default: true
	BufferSizeMB int  `json:"bufferSizeMB"` // Default: 40
	FrameStep    int  `json:"frameStep"`    // Default: 1 (capture every frame)
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Version:          1,
		Hotkeys:          hotkey.DefaultBindings(),
		Scaling:          2,
		ShowFPS:          false,
		FrameSkipOnTurbo: 4,
		Audio: AudioConfig{
			Volume: 1.0,
			Muted:  false,
		},
		Window: WindowConfig{
			Fullscreen: false,
		},
		Rewind: RewindConfig{
			Enabled:      true,
			BufferSizeMB: 40,
			FrameStep:    1,
		},
	}
}
