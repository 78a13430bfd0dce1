package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMonk loads Monk Dodge configuration.
// Search order: customPath -> ~/.arcade/configs/monk.yaml -> ./configs/monk.yaml -> embedded default
func LoadMonk(customPath string) (MonkConfig, error) {
	return load("monk", customPath, defaultMonkYAML, DefaultMonkConfig)
}

// LoadRoach loads Roach Smash configuration.
// Search order: customPath -> ~/.arcade/configs/roach.yaml -> ./configs/roach.yaml -> embedded default
func LoadRoach(customPath string) (RoachConfig, error) {
	return load("roach", customPath, defaultRoachYAML, DefaultRoachConfig)
}

// load walks the search order for gameID. Files are decoded over the
// hard-coded defaults, so a partial file only overrides what it names.
func load[T any](gameID, customPath string, embedded []byte, fallback func() T) (T, error) {
	filename := gameID + ".yaml"

	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
