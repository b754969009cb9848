package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay
}

// Viewport maps a grid of terminal cells onto logical pixels.
// Terminal cells are roughly twice as tall as they are wide, so the
// cell size is configurable per axis.
type Viewport struct {
	Cols  int
	Rows  int
	CellW float64 // Logical pixels per column
	CellH float64 // Logical pixels per row
}

// NewViewport creates a viewport for a cols x rows terminal.
func NewViewport(cols, rows int, cellW, cellH float64) Viewport {
	return Viewport{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH}
}

// Width returns the viewport width in logical pixels.
func (v Viewport) Width() float64 {
	return float64(v.Cols) * v.CellW
}

// Height returns the viewport height in logical pixels.
func (v Viewport) Height() float64 {
	return float64(v.Rows) * v.CellH
}

// ToCells projects a pixel rectangle onto the cell grid.
// Partially covered cells are included so that small sprites stay visible.
func (v Viewport) ToCells(r RectF) Rect {
	x0 := floorDiv(r.X, v.CellW)
	y0 := floorDiv(r.Y, v.CellH)
	x1 := ceilDiv(r.Right(), v.CellW)
	y1 := ceilDiv(r.Bottom(), v.CellH)
	return NewRect(x0, y0, Max(x1-x0, 1), Max(y1-y0, 1))
}

func floorDiv(v, unit float64) int {
	q := int(v / unit)
	if float64(q)*unit > v {
		q--
	}
	return q
}

func ceilDiv(v, unit float64) int {
	q := int(v / unit)
	if float64(q)*unit < v {
		q++
	}
	return q
}
