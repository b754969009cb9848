package dodge

import (
	"math/rand"

	"github.com/vovakirdan/tilt-dodge/internal/core"
)

// Obstacle is a falling block. Its X is fixed at spawn; only Y changes.
type Obstacle struct {
	ID uint64  // Spawn sequence number, strictly increasing
	X  float64 // Left edge in pixels
	Y  float64 // Top edge in pixels, starts above the screen
}

// Rect returns the collision rectangle for this obstacle.
func (o Obstacle) Rect(w, h float64) core.RectF {
	return core.NewRectF(o.X, o.Y, w, h)
}

// ObstacleField handles spawning, falling and removal of blocks.
type ObstacleField struct {
	blocks  []Obstacle
	rng     *rand.Rand
	nextID  uint64
	screenW float64
	screenH float64
	blockW  float64
	blockH  float64
}

// NewObstacleField creates an empty field with the given RNG seed.
func NewObstacleField(seed int64, screenW, screenH, blockW, blockH float64) *ObstacleField {
	return &ObstacleField{
		blocks:  make([]Obstacle, 0, 16),
		rng:     rand.New(rand.NewSource(seed)),
		nextID:  1,
		screenW: screenW,
		screenH: screenH,
		blockW:  blockW,
		blockH:  blockH,
	}
}

// Reseed replaces the RNG so the next spawns follow a new sequence.
func (f *ObstacleField) Reseed(seed int64) {
	f.rng = rand.New(rand.NewSource(seed))
}

// Clear removes every block. IDs keep counting so they never repeat
// within the field's lifetime.
func (f *ObstacleField) Clear() {
	f.blocks = f.blocks[:0]
}

// Spawn appends a block at a random column just above the visible area.
func (f *ObstacleField) Spawn() Obstacle {
	span := f.screenW - f.blockW
	if span < 0 {
		span = 0
	}

	o := Obstacle{
		ID: f.nextID,
		X:  f.rng.Float64() * span,
		Y:  -f.blockH,
	}
	f.nextID++
	f.blocks = append(f.blocks, o)
	return o
}

// Fall moves every block down by speed, then drops the ones that are
// fully below the screen. Returns how many were dropped.
func (f *ObstacleField) Fall(speed float64) int {
	for i := range f.blocks {
		f.blocks[i].Y += speed
	}

	limit := f.screenH + f.blockH
	kept := f.blocks[:0]
	for _, o := range f.blocks {
		if o.Y < limit {
			kept = append(kept, o)
		}
	}
	dropped := len(f.blocks) - len(kept)
	f.blocks = kept
	return dropped
}

// CheckCollision tests the given rectangle against every block and
// returns the first one it overlaps.
func (f *ObstacleField) CheckCollision(r core.RectF) (Obstacle, bool) {
	for _, o := range f.blocks {
		if r.Intersects(o.Rect(f.blockW, f.blockH)) {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Blocks returns the live blocks in spawn order.
func (f *ObstacleField) Blocks() []Obstacle {
	return f.blocks
}
