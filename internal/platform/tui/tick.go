// Package tui hosts the dodge simulation in a Bubble Tea program.
// It owns the three game timers, maps keys and clicks to actions, and
// records each round for later replay.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilt-dodge/internal/loop"
)

// Timer messages carry the epoch they were scheduled in. A restart bumps
// the epoch, so ticks from an earlier round are recognized and dropped.
type (
	SensorTickMsg struct{ Epoch int }
	SpawnTickMsg  struct{ Epoch int }
	FallTickMsg   struct{ Epoch int }
)

func sensorTickCmd(epoch int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SensorTickMsg{Epoch: epoch}
	})
}

func spawnTickCmd(epoch int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SpawnTickMsg{Epoch: epoch}
	})
}

func fallTickCmd(epoch int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FallTickMsg{Epoch: epoch}
	})
}

// scheduleTicks starts one chain per timer for the given epoch.
func scheduleTicks(epoch int, iv loop.Intervals) tea.Cmd {
	return tea.Batch(
		sensorTickCmd(epoch, iv.Sensor),
		spawnTickCmd(epoch, iv.Spawn),
		fallTickCmd(epoch, iv.Fall),
	)
}
