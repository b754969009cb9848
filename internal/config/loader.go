package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDodge loads the tilt dodge configuration.
// Search order: customPath -> ~/.tiltdodge/configs/dodge.yaml -> ./configs/dodge.yaml -> embedded default
func LoadDodge(customPath string) (DodgeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath := userConfigPath("dodge.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/dodge.yaml"); err == nil {
		if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultDodgeYAML)
	if err != nil {
		return DefaultDodgeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults, so partial files only
// override the keys they mention.
func parse(data []byte) (DodgeConfig, error) {
	cfg := DefaultDodgeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DodgeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tiltdodge", "configs", filename)
}
