// Package config provides YAML-based game configuration loading.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DodgeConfig contains all configuration for the tilt dodge game.
// Sizes are in logical pixels; the viewport section maps them to cells.
type DodgeConfig struct {
	Player    DodgePlayer    `yaml:"player"`
	Obstacles DodgeObstacles `yaml:"obstacles"`
	Physics   DodgePhysics   `yaml:"physics"`
	Timing    DodgeTiming    `yaml:"timing"`
	Viewport  DodgeViewport  `yaml:"viewport"`
}

// DodgePlayer defines the player sprite geometry.
type DodgePlayer struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"` // Gap between the player and the bottom edge
}

// DodgeObstacles defines the falling block geometry.
type DodgeObstacles struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DodgePhysics defines movement parameters.
type DodgePhysics struct {
	Sensitivity float64 `yaml:"sensitivity"` // Pixels moved per unit of tilt per sensor sample
	FallSpeed   float64 `yaml:"fall_speed"`  // Pixels fallen per fall tick
}

// DodgeTiming defines the three timer intervals in milliseconds.
type DodgeTiming struct {
	SensorIntervalMs int `yaml:"sensor_interval_ms"`
	SpawnIntervalMs  int `yaml:"spawn_interval_ms"`
	FallIntervalMs   int `yaml:"fall_interval_ms"`
}

// SensorInterval returns the sensor sampling interval.
func (t DodgeTiming) SensorInterval() time.Duration {
	return time.Duration(t.SensorIntervalMs) * time.Millisecond
}

// SpawnInterval returns the obstacle spawn interval.
func (t DodgeTiming) SpawnInterval() time.Duration {
	return time.Duration(t.SpawnIntervalMs) * time.Millisecond
}

// FallInterval returns the obstacle fall interval.
func (t DodgeTiming) FallInterval() time.Duration {
	return time.Duration(t.FallIntervalMs) * time.Millisecond
}

// DodgeViewport defines how many logical pixels one terminal cell covers.
type DodgeViewport struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// Validate checks that every size and interval is positive and finite.
func (c DodgeConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %v", name, v))
			return
		}
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	if math.IsNaN(c.Player.Margin) || math.IsInf(c.Player.Margin, 0) {
		errs = append(errs, fmt.Errorf("player.margin must be finite, got %v", c.Player.Margin))
	} else if c.Player.Margin < 0 {
		errs = append(errs, fmt.Errorf("player.margin must not be negative, got %v", c.Player.Margin))
	}
	positive("obstacles.width", c.Obstacles.Width)
	positive("obstacles.height", c.Obstacles.Height)
	positive("physics.sensitivity", c.Physics.Sensitivity)
	positive("physics.fall_speed", c.Physics.FallSpeed)
	positive("timing.sensor_interval_ms", float64(c.Timing.SensorIntervalMs))
	positive("timing.spawn_interval_ms", float64(c.Timing.SpawnIntervalMs))
	positive("timing.fall_interval_ms", float64(c.Timing.FallIntervalMs))
	positive("viewport.cell_width", c.Viewport.CellWidth)
	positive("viewport.cell_height", c.Viewport.CellHeight)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid dodge config: %w", err)
	}
	return nil
}
