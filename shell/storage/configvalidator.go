package storage

import (
	"encoding/json"
	"fmt"
)

// detectPresentKeys unmarshals JSON bytes to determine which config keys
// are explicitly present in the file. Returns a flat set of dotted-path keys
// (e.g., "audio.volume", "rewind.frameStep"). Only checks fields that have
// defaults or validation rules.
func detectPresentKeys(jsonBytes []byte) map[string]bool {
	present := make(map[string]bool)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return present
	}

	// Top-level keys
	topKeys := []string{"version", "hotkeys", "scaling", "showFps", "frameSkipOnTurbo"}
	for _, k := range topKeys {
		if _, ok := raw[k]; ok {
			present[k] = true
		}
	}

	// Nested: audio
	if audioRaw, ok := raw["audio"]; ok {
		var audio map[string]json.RawMessage
		if json.Unmarshal(audioRaw, &audio) == nil {
			if _, ok := audio["volume"]; ok {
				present["audio.volume"] = true
			}
		}
	}

	// Nested: rewind
	if rewindRaw, ok := raw["rewind"]; ok {
		var rewind map[string]json.RawMessage
		if json.Unmarshal(rewindRaw, &rewind) == nil {
			if _, ok := rewind["enabled"]; ok {
				present["rewind.enabled"] = true
			}
			if _, ok := rewind["bufferSizeMB"]; ok {
				present["rewind.bufferSizeMB"] = true
			}
			if _, ok := rewind["frameStep"]; ok {
				present["rewind.frameStep"] = true
			}
		}
	}

	return present
}

// ApplyMissingDefaults sets default values for config fields that are absent
// from the JSON file. Only truly missing fields get defaults, preserving
// intentional zero values (e.g., volume=0). An absent hotkeys list stays
// empty: lookups fall back to default bindings per action.
func ApplyMissingDefaults(config *Config, presentKeys map[string]bool) {
	defaults := DefaultConfig()

	if !presentKeys["version"] {
		config.Version = defaults.Version
	}
	if !presentKeys["scaling"] {
		config.Scaling = defaults.Scaling
	}
	if !presentKeys["showFps"] {
		config.ShowFPS = defaults.ShowFPS
	}
	if !presentKeys["frameSkipOnTurbo"] {
		config.FrameSkipOnTurbo = defaults.FrameSkipOnTurbo
	}
	if !presentKeys["audio.volume"] {
		config.Audio.Volume = defaults.Audio.Volume
	}
	if !presentKeys["rewind.enabled"] {
		config.Rewind.Enabled = defaults.Rewind.Enabled
	}
	if !presentKeys["rewind.bufferSizeMB"] {
		config.Rewind.BufferSizeMB = defaults.Rewind.BufferSizeMB
	}
	if !presentKeys["rewind.frameStep"] {
		config.Rewind.FrameStep = defaults.Rewind.FrameStep
	}
}

// ValidateConfig checks all config fields against valid ranges and returns
// human-readable error descriptions. An empty slice means the config is valid.
func ValidateConfig(config *Config) []string {
	var errors []string

	// version
	if config.Version != 1 {
		errors = append(errors, fmt.Sprintf("version: %d (valid: 1)", config.Version))
	}

	// scaling
	if config.Scaling < 1 {
		errors = append(errors, fmt.Sprintf("scaling: %d (valid: >= 1)", config.Scaling))
	}

	// frameSkipOnTurbo
	if config.FrameSkipOnTurbo < 1 || config.FrameSkipOnTurbo > 10 {
		errors = append(errors, fmt.Sprintf("frameSkipOnTurbo: %d (valid: 1-10)", config.FrameSkipOnTurbo))
	}

	// audio.volume
	if config.Audio.Volume < 0 || config.Audio.Volume > 2.0 {
		errors = append(errors, fmt.Sprintf("audio.volume: %.2f (valid: 0.0-2.0)", config.Audio.Volume))
	}

	// rewind.bufferSizeMB
	if config.Rewind.BufferSizeMB < 10 || config.Rewind.BufferSizeMB > 200 {
		errors = append(errors, fmt.Sprintf("rewind.bufferSizeMB: %d (valid: 10-200)", config.Rewind.BufferSizeMB))
	}

	// rewind.frameStep
	if config.Rewind.FrameStep < 1 || config.Rewind.FrameStep > 10 {
		errors = append(errors, fmt.Sprintf("rewind.frameStep: %d (valid: 1-10)", config.Rewind.FrameStep))
	}

	return errors
}

// CorrectConfig resets any invalid fields to their defaults from
// DefaultConfig(). Valid fields are preserved.
func CorrectConfig(config *Config) *Config {
	defaults := DefaultConfig()

	if config.Version != 1 {
		config.Version = defaults.Version
	}
	if config.Scaling < 1 {
		config.Scaling = defaults.Scaling
	}
	if config.FrameSkipOnTurbo < 1 || config.FrameSkipOnTurbo > 10 {
		config.FrameSkipOnTurbo = defaults.FrameSkipOnTurbo
	}
	if config.Audio.Volume < 0 || config.Audio.Volume > 2.0 {
		config.Audio.Volume = defaults.Audio.Volume
	}
	if config.Rewind.BufferSizeMB < 10 || config.Rewind.BufferSizeMB > 200 {
		config.Rewind.BufferSizeMB = defaults.Rewind.BufferSizeMB
	}
	if config.Rewind.FrameStep < 1 || config.Rewind.FrameStep > 10 {
		config.Rewind.FrameStep = defaults.Rewind.FrameStep
	}

	return config
}
