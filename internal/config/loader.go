package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "outbreak.yaml"

// LoadOutbreak loads the outbreak configuration.
// Search order: customPath -> ~/.outbreak/configs/outbreak.yaml -> ./configs/outbreak.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes.
func LoadOutbreak(customPath string) (OutbreakConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return OutbreakConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return OutbreakConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultOutbreakYAML)
	if err != nil {
		return DefaultOutbreakConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultOutbreakConfig.
func Parse(data []byte) (OutbreakConfig, error) {
	cfg := DefaultOutbreakConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return OutbreakConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".outbreak", "configs", filename)
}
