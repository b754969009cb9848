// Package dodge implements the tilt dodge simulation: a player slides along
// the bottom of the screen under tilt control while blocks fall from the top.
// Touching a block ends the round until Restart is called.
//
// The simulation owns no timers. Hosts call Tilt, Spawn and Fall from their
// own sensor and timer callbacks, one at a time, and stop calling them while
// the game is over.
package dodge

import (
	"math"

	"github.com/vovakirdan/tilt-dodge/internal/config"
	"github.com/vovakirdan/tilt-dodge/internal/core"
)

// State is the two-valued game state.
type State int

const (
	StateActive State = iota
	StateOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Player is the tilt-controlled sprite. Only X changes during play.
type Player struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Rect returns the player's collision rectangle.
func (p Player) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.Width, p.Height)
}

// Snapshot is a copy of everything a renderer needs.
type Snapshot struct {
	ScreenW   float64
	ScreenH   float64
	Player    Player
	Obstacles []Obstacle // Spawn order
	BlockW    float64
	BlockH    float64
	State     State
	Spawned   int // Blocks spawned since the last restart
}

// Observer receives a snapshot after every operation that changed the game.
type Observer func(Snapshot)

// Sim is the tilt dodge simulation.
type Sim struct {
	cfg       config.DodgeConfig
	screenW   float64
	screenH   float64
	player    Player
	field     *ObstacleField
	state     State
	spawned   int
	observers map[int]Observer
	nextObsID int
}

// New creates a simulation for a screenW x screenH pixel viewport.
func New(cfg config.DodgeConfig, screenW, screenH float64, seed int64) *Sim {
	s := &Sim{
		cfg:     cfg,
		screenW: screenW,
		screenH: screenH,
		player: Player{
			Y:      screenH - cfg.Player.Height - cfg.Player.Margin,
			Width:  cfg.Player.Width,
			Height: cfg.Player.Height,
		},
		field:     NewObstacleField(seed, screenW, screenH, cfg.Obstacles.Width, cfg.Obstacles.Height),
		observers: make(map[int]Observer),
	}
	s.player.X = s.centerX()
	return s
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Sim) Subscribe(fn Observer) (unsubscribe func()) {
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn
	return func() {
		delete(s.observers, id)
	}
}

// Tilt applies one sensor reading. Positive tilt moves the player left.
// There is no velocity: each reading is a one-off displacement.
// Non-finite readings are treated as level.
func (s *Sim) Tilt(x float64) {
	if s.state == StateOver {
		return
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}

	next := s.player.X - x*s.cfg.Physics.Sensitivity
	s.player.X = core.ClampF(next, 0, s.maxPlayerX())
	s.collide()
	s.notify()
}

// Spawn adds one block above the screen at a random column.
func (s *Sim) Spawn() {
	if s.state == StateOver {
		return
	}

	s.field.Spawn()
	s.spawned++
	s.collide()
	s.notify()
}

// Fall moves every block down one step, prunes the ones that left the
// screen, then checks for collisions.
func (s *Sim) Fall() {
	if s.state == StateOver {
		return
	}

	s.field.Fall(s.cfg.Physics.FallSpeed)
	s.collide()
	s.notify()
}

// CheckCollision ends the game if the player overlaps any block.
// It reports whether the game is over afterwards.
func (s *Sim) CheckCollision() bool {
	if s.state == StateOver {
		return true
	}
	if s.collide() {
		s.notify()
	}
	return s.state == StateOver
}

// Restart recenters the player, clears the blocks and reactivates the game.
func (s *Sim) Restart() {
	s.player.X = s.centerX()
	s.field.Clear()
	s.spawned = 0
	s.state = StateActive
	s.notify()
}

// Reseed changes the RNG used for spawn columns. Hosts call it before
// Restart when a round should follow a new, reproducible sequence.
func (s *Sim) Reseed(seed int64) {
	s.field.Reseed(seed)
}

// State returns the current game state.
func (s *Sim) State() State {
	return s.state
}

// Player returns the current player.
func (s *Sim) Player() Player {
	return s.player
}

// Obstacles returns a copy of the live blocks in spawn order.
func (s *Sim) Obstacles() []Obstacle {
	blocks := s.field.Blocks()
	out := make([]Obstacle, len(blocks))
	copy(out, blocks)
	return out
}

// Snapshot returns a copy of the current state.
func (s *Sim) Snapshot() Snapshot {
	return Snapshot{
		ScreenW:   s.screenW,
		ScreenH:   s.screenH,
		Player:    s.player,
		Obstacles: s.Obstacles(),
		BlockW:    s.cfg.Obstacles.Width,
		BlockH:    s.cfg.Obstacles.Height,
		State:     s.state,
		Spawned:   s.spawned,
	}
}

// collide runs the bounding-box check and flips to StateOver on the first
// hit. Returns true if the state changed.
func (s *Sim) collide() bool {
	if s.state == StateOver {
		return false
	}
	if _, hit := s.field.CheckCollision(s.player.Rect()); hit {
		s.state = StateOver
		return true
	}
	return false
}

func (s *Sim) notify() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.observers {
		fn(snap)
	}
}

// centerX is clamped so a field narrower than the player still starts in bounds.
func (s *Sim) centerX() float64 {
	return core.ClampF((s.screenW-s.cfg.Player.Width)/2, 0, s.maxPlayerX())
}

func (s *Sim) maxPlayerX() float64 {
	if m := s.screenW - s.cfg.Player.Width; m > 0 {
		return m
	}
	return 0
}
