package storage

import (
	"errors"
	"fmt"
	"os"
)

// LoadConfig reads config.json from the platform data directory. A
// missing file yields defaults; a file that exists but cannot be parsed
// is an error, so the caller can leave the broken file intact.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return loadConfigFile(path)
}

// loadConfigFile reads and repairs one config file. Keys absent from
// the JSON keep their defaults, so files written by older versions gain
// new fields without losing the values they do carry.
func loadConfigFile(path string) (*Config, error) {
	config := &Config{}
	raw, err := ReadJSON(path, config)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ApplyMissingDefaults(config, detectPresentKeys(raw))

	return config, nil
}

// SaveConfig writes the configuration to config.json atomically.
func SaveConfig(config *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return AtomicWriteJSON(path, config)
}
