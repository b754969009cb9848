// Package loop drives a dodge simulation from three fixed-interval timers
// on a virtual clock. Time only moves when the caller advances it, so runs
// are reproducible: the same seed and tilt script always end the same way.
package loop

import (
	"time"

	"github.com/vovakirdan/tilt-dodge/internal/config"
	"github.com/vovakirdan/tilt-dodge/internal/dodge"
	"github.com/vovakirdan/tilt-dodge/internal/sensor"
)

// Intervals holds the period of each timer.
type Intervals struct {
	Sensor time.Duration
	Spawn  time.Duration
	Fall   time.Duration
}

// IntervalsFrom converts the configured timing.
func IntervalsFrom(t config.DodgeTiming) Intervals {
	return Intervals{
		Sensor: t.SensorInterval(),
		Spawn:  t.SpawnInterval(),
		Fall:   t.FallInterval(),
	}
}

// Timer indexes. When several timers are due at the same instant they
// fire in this order.
const (
	timerSensor = iota
	timerSpawn
	timerFall
	numTimers
)

type timer struct {
	every time.Duration
	next  time.Duration
}

// Outcome summarizes the current round.
type Outcome struct {
	Elapsed     time.Duration // Virtual time since the round started
	Spawned     int
	SensorTicks int
	FallTicks   int
	Over        bool // A block hit the player
	Starved     bool // The sensor ran out of readings
}

// Stepper owns the timers for one simulation. Timers are armed while the
// game is active and disarmed the moment it ends; Restart arms them again.
type Stepper struct {
	sim    *dodge.Sim
	src    sensor.Source
	timers [numTimers]timer

	now        time.Duration
	roundStart time.Duration
	armed      bool
	starved    bool
	ticks      [numTimers]int
}

// NewStepper creates a stepper with all timers armed at time zero.
func NewStepper(sim *dodge.Sim, src sensor.Source, iv Intervals) *Stepper {
	st := &Stepper{sim: sim, src: src}
	st.timers[timerSensor].every = iv.Sensor
	st.timers[timerSpawn].every = iv.Spawn
	st.timers[timerFall].every = iv.Fall
	st.arm()
	return st
}

// Now returns the virtual clock.
func (st *Stepper) Now() time.Duration {
	return st.now
}

// Armed reports whether the timers are running.
func (st *Stepper) Armed() bool {
	return st.armed
}

// Advance moves the clock forward by d, firing every timer that falls due
// on the way. Once the game ends nothing fires until Restart.
func (st *Stepper) Advance(d time.Duration) {
	target := st.now + d
	for st.armed {
		idx, at := st.nextDue()
		if at > target {
			break
		}
		st.now = at
		st.fire(idx)
	}
	st.now = target
}

// Run advances until the game ends, the sensor runs dry, or limit has
// elapsed, and reports the round so far.
func (st *Stepper) Run(limit time.Duration) Outcome {
	end := st.now + limit
	for st.armed && !st.starved {
		idx, at := st.nextDue()
		if at > end {
			st.now = end
			break
		}
		st.now = at
		st.fire(idx)
	}
	return st.Outcome()
}

// Restart resets the simulation and re-arms each timer exactly once,
// with its first firing one full interval from now.
func (st *Stepper) Restart() {
	st.sim.Restart()
	st.arm()
}

// Outcome reports on the current round.
func (st *Stepper) Outcome() Outcome {
	return Outcome{
		Elapsed:     st.now - st.roundStart,
		Spawned:     st.sim.Snapshot().Spawned,
		SensorTicks: st.ticks[timerSensor],
		FallTicks:   st.ticks[timerFall],
		Over:        st.sim.State() == dodge.StateOver,
		Starved:     st.starved,
	}
}

func (st *Stepper) arm() {
	for i := range st.timers {
		st.timers[i].next = st.now + st.timers[i].every
		st.ticks[i] = 0
	}
	st.roundStart = st.now
	st.starved = false
	st.armed = st.sim.State() == dodge.StateActive
}

// nextDue returns the earliest timer; ties go to the lower index.
func (st *Stepper) nextDue() (int, time.Duration) {
	best := 0
	for i := 1; i < numTimers; i++ {
		if st.timers[i].next < st.timers[best].next {
			best = i
		}
	}
	return best, st.timers[best].next
}

func (st *Stepper) fire(idx int) {
	st.timers[idx].next += st.timers[idx].every
	st.ticks[idx]++

	switch idx {
	case timerSensor:
		r, ok := st.src.Sample()
		if !ok {
			st.starved = true
			return
		}
		st.sim.Tilt(r.X)
	case timerSpawn:
		st.sim.Spawn()
	case timerFall:
		st.sim.Fall()
	}

	if st.sim.State() == dodge.StateOver {
		st.armed = false
	}
}
