package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

// DefaultDodgeConfig returns the default tilt dodge configuration.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		Player: DodgePlayer{
			Width:  90,
			Height: 90,
			Margin: 20,
		},
		Obstacles: DodgeObstacles{
			Width:  60,
			Height: 60,
		},
		Physics: DodgePhysics{
			Sensitivity: 20,
			FallSpeed:   5,
		},
		Timing: DodgeTiming{
			SensorIntervalMs: 100,
			SpawnIntervalMs:  1200,
			FallIntervalMs:   16,
		},
		Viewport: DodgeViewport{
			CellWidth:  10,
			CellHeight: 20,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDodgeYAML
}
