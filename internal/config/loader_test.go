package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultDodgeConfig() {
		t.Errorf("embedded defaults %+v differ from DefaultDodgeConfig %+v", cfg, DefaultDodgeConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDodgeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dodge.yaml")
	data := "physics:\n  sensitivity: 35\ntiming:\n  spawn_interval_ms: 800\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDodge(path)
	if err != nil {
		t.Fatalf("LoadDodge() failed: %v", err)
	}

	if cfg.Physics.Sensitivity != 35 {
		t.Errorf("sensitivity = %v, expected 35", cfg.Physics.Sensitivity)
	}
	if cfg.Timing.SpawnIntervalMs != 800 {
		t.Errorf("spawn interval = %d, expected 800", cfg.Timing.SpawnIntervalMs)
	}
	// Keys not mentioned keep their defaults
	if cfg.Physics.FallSpeed != 5 {
		t.Errorf("fall speed = %v, expected default 5", cfg.Physics.FallSpeed)
	}
	if cfg.Player.Width != 90 {
		t.Errorf("player width = %v, expected default 90", cfg.Player.Width)
	}
}

func TestLoadDodgeMissingCustomPath(t *testing.T) {
	_, err := LoadDodge(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadDodgeInvalidCustomConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dodge.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  fall_interval_ms: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadDodge(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "fall_interval_ms") {
		t.Errorf("error should name the bad key, got %v", err)
	}
}

func TestLoadDodgeRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		key  string
	}{
		{"infinite sensitivity", "physics:\n  sensitivity: .inf\n", "physics.sensitivity"},
		{"nan fall speed", "physics:\n  fall_speed: .nan\n", "physics.fall_speed"},
		{"negative infinite cell width", "viewport:\n  cell_width: -.inf\n", "viewport.cell_width"},
		{"nan margin", "player:\n  margin: .nan\n", "player.margin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dodge.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
				t.Fatal(err)
			}

			_, err := LoadDodge(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error should name %s, got %v", tt.key, err)
			}
		})
	}
}

func TestTimingDurations(t *testing.T) {
	timing := DefaultDodgeConfig().Timing

	if timing.SensorInterval().Milliseconds() != 100 {
		t.Errorf("sensor interval = %v", timing.SensorInterval())
	}
	if timing.SpawnInterval().Milliseconds() != 1200 {
		t.Errorf("spawn interval = %v", timing.SpawnInterval())
	}
	if timing.FallInterval().Milliseconds() != 16 {
		t.Errorf("fall interval = %v", timing.FallInterval())
	}
}
