package loop

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tilt-dodge/internal/config"
	"github.com/vovakirdan/tilt-dodge/internal/dodge"
	"github.com/vovakirdan/tilt-dodge/internal/sensor"
)

func defaultIntervals() Intervals {
	return IntervalsFrom(config.DefaultDodgeConfig().Timing)
}

// newNarrowStepper builds a screen exactly as wide as the player, so every
// block lands on it. The first block spawns at 1200ms and reaches the
// player on its 81st fall. The spawn and the 75th fall share the 1200ms
// instant and spawn fires first, so the hit lands at 2480ms.
func newNarrowStepper(seed int64) (*Stepper, *dodge.Sim) {
	sim := dodge.New(config.DefaultDodgeConfig(), 90, 510, seed)
	return NewStepper(sim, sensor.NewKeyboard(), defaultIntervals()), sim
}

func TestIntervalsFromConfig(t *testing.T) {
	iv := defaultIntervals()
	if iv.Sensor != 100*time.Millisecond || iv.Spawn != 1200*time.Millisecond || iv.Fall != 16*time.Millisecond {
		t.Errorf("IntervalsFrom() = %+v", iv)
	}
}

func TestAdvanceFiresTimersOnSchedule(t *testing.T) {
	sim := dodge.New(config.DefaultDodgeConfig(), 400, 510, 1)
	st := NewStepper(sim, sensor.NewKeyboard(), defaultIntervals())

	st.Advance(1199 * time.Millisecond)
	out := st.Outcome()
	if out.Spawned != 0 {
		t.Errorf("spawned %d blocks before 1200ms", out.Spawned)
	}
	if out.FallTicks != 74 {
		t.Errorf("fall ticks = %d, expected 74", out.FallTicks)
	}
	if out.SensorTicks != 11 {
		t.Errorf("sensor ticks = %d, expected 11", out.SensorTicks)
	}

	st.Advance(time.Millisecond)
	out = st.Outcome()
	if out.Spawned != 1 {
		t.Errorf("spawned %d blocks at 1200ms, expected 1", out.Spawned)
	}
	if out.FallTicks != 75 || out.SensorTicks != 12 {
		t.Errorf("ticks at 1200ms = %+v", out)
	}
	if st.Now() != 1200*time.Millisecond {
		t.Errorf("Now() = %v", st.Now())
	}
}

func TestSensorTicksMovePlayer(t *testing.T) {
	sim := dodge.New(config.DefaultDodgeConfig(), 400, 510, 1)
	st := NewStepper(sim, sensor.NewScript([]float64{1, 1, 1}), defaultIntervals())

	st.Advance(300 * time.Millisecond)
	if x := sim.Player().X; x != 95 {
		t.Errorf("player X = %v, expected 95", x)
	}
}

func TestRunStopsAtGameOver(t *testing.T) {
	st, sim := newNarrowStepper(1)

	out := st.Run(10 * time.Second)
	if !out.Over {
		t.Fatalf("expected game over, got %+v", out)
	}
	if out.Elapsed != 2480*time.Millisecond {
		t.Errorf("game ended at %v, expected 2.48s", out.Elapsed)
	}
	if out.Spawned != 2 {
		t.Errorf("spawned = %d, expected 2", out.Spawned)
	}
	if st.Armed() {
		t.Error("timers should be disarmed after game over")
	}

	before := sim.Snapshot()
	st.Advance(5 * time.Second)
	if !reflect.DeepEqual(before, sim.Snapshot()) {
		t.Error("simulation changed while timers were disarmed")
	}
	if st.Outcome().FallTicks != out.FallTicks {
		t.Error("fall timer kept firing after game over")
	}
}

func TestRestartRearmsOnce(t *testing.T) {
	st, sim := newNarrowStepper(1)
	st.Run(10 * time.Second)

	// Repeated restarts must not stack timers
	st.Restart()
	st.Restart()
	st.Restart()

	if !st.Armed() || sim.State() != dodge.StateActive {
		t.Fatal("restart should re-arm an active game")
	}

	st.Advance(1200 * time.Millisecond)
	out := st.Outcome()
	if out.Spawned != 1 {
		t.Errorf("spawned %d blocks in the first interval after restart, expected 1", out.Spawned)
	}
	if out.FallTicks != 75 {
		t.Errorf("fall ticks = %d, expected 75", out.FallTicks)
	}
	if out.Elapsed != 1200*time.Millisecond {
		t.Errorf("round elapsed = %v", out.Elapsed)
	}

	// A restarted round plays out exactly like the first one
	out = st.Run(10 * time.Second)
	if !out.Over || out.Elapsed != 2480*time.Millisecond {
		t.Errorf("restarted round = %+v", out)
	}
}

func TestRunStopsWhenSensorStarves(t *testing.T) {
	sim := dodge.New(config.DefaultDodgeConfig(), 400, 510, 1)
	st := NewStepper(sim, sensor.NewScript([]float64{0, 0, 0, 0, 0}), defaultIntervals())

	out := st.Run(time.Minute)
	if !out.Starved || out.Over {
		t.Fatalf("expected starved run, got %+v", out)
	}
	if out.Elapsed != 600*time.Millisecond {
		t.Errorf("starved at %v, expected 600ms", out.Elapsed)
	}
	if out.SensorTicks != 6 {
		t.Errorf("sensor ticks = %d, expected 6", out.SensorTicks)
	}
}

func TestRunRespectsLimit(t *testing.T) {
	sim := dodge.New(config.DefaultDodgeConfig(), 400, 510, 1)
	st := NewStepper(sim, sensor.NewKeyboard(), defaultIntervals())

	out := st.Run(500 * time.Millisecond)
	if out.Over || out.Starved {
		t.Fatalf("unexpected stop: %+v", out)
	}
	if out.Elapsed != 500*time.Millisecond {
		t.Errorf("elapsed = %v, expected 500ms", out.Elapsed)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	tilts := make([]float64, 400)
	for i := range tilts {
		tilts[i] = math.Sin(float64(i) / 7)
	}

	run := func() (Outcome, dodge.Snapshot) {
		sim := dodge.New(config.DefaultDodgeConfig(), 400, 510, 3)
		st := NewStepper(sim, sensor.NewScript(tilts), defaultIntervals())
		return st.Run(time.Minute), sim.Snapshot()
	}

	out1, snap1 := run()
	out2, snap2 := run()
	if out1 != out2 {
		t.Errorf("outcomes differ: %+v vs %+v", out1, out2)
	}
	if !reflect.DeepEqual(snap1, snap2) {
		t.Error("final snapshots differ")
	}
}
