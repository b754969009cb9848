package dodge

import (
	"github.com/vovakirdan/tilt-dodge/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar = '█'
	BlockChar  = '▓'
)

// Captions shown over the playfield.
const (
	InstructionText = "Tilt to Dodge!"
	GameOverText    = "GAME OVER"
	RestartText     = "RESTART"
)

// Render draws the current state into dst using vp to map pixels to cells.
func (s *Sim) Render(dst *core.Screen, vp core.Viewport) {
	RenderSnapshot(dst, s.Snapshot(), vp)
}

// RenderSnapshot draws a snapshot into dst.
func RenderSnapshot(dst *core.Screen, snap Snapshot, vp core.Viewport) {
	dst.Clear()

	for _, o := range snap.Obstacles {
		dst.DrawRect(vp.ToCells(o.Rect(snap.BlockW, snap.BlockH)), BlockChar, core.ColorYellow)
	}

	dst.DrawRect(vp.ToCells(snap.Player.Rect()), PlayerChar, core.ColorCyan)

	if snap.State == StateActive {
		dst.DrawTextCentered(instructionRow(dst.Height()), InstructionText, core.ColorBrightWhite)
		return
	}

	dst.DrawTextCentered(gameOverRow(dst.Height()), GameOverText, core.ColorBrightRed)

	btn := RestartButton(dst.Width(), dst.Height())
	dst.DrawRect(btn, ' ', core.ColorDefault)
	dst.DrawBox(btn, core.ColorGray)
	dst.DrawTextCentered(btn.Y+1, RestartText, core.ColorBrightWhite)
}

// RestartButton returns the cell rectangle of the restart control on a
// width x height screen. Hosts hit-test clicks against it.
func RestartButton(width, height int) core.Rect {
	w := len(RestartText) + 6
	h := 3
	return core.NewRect((width-w)/2, height/2, w, h)
}

// instructionRow sits a few rows below the top edge.
func instructionRow(height int) int {
	return core.Min(3, height/4)
}

func gameOverRow(height int) int {
	return core.Max(0, height/2-3)
}
