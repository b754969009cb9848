package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFIntersects(t *testing.T) {
	player := NewRectF(40, 400, 90, 90)

	tests := []struct {
		name     string
		other    RectF
		expected bool
	}{
		{"block over player", NewRectF(50, 420, 60, 60), true},
		{"block to the right", NewRectF(200, 420, 60, 60), false},
		{"touching right edge", NewRectF(130, 420, 60, 60), false},
		{"touching top edge", NewRectF(50, 340, 60, 60), false},
		{"one pixel into top edge", NewRectF(50, 341, 60, 60), true},
		{"fractional overlap", NewRectF(129.5, 420, 60, 60), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := player.Intersects(tc.other); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.other.Intersects(player); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestViewportToCells(t *testing.T) {
	v := NewViewport(80, 24, 10, 20)

	if v.Width() != 800 || v.Height() != 480 {
		t.Fatalf("viewport size = %vx%v, expected 800x480", v.Width(), v.Height())
	}

	tests := []struct {
		name     string
		in       RectF
		expected Rect
	}{
		{"aligned", NewRectF(100, 40, 60, 60), NewRect(10, 2, 6, 3)},
		{"partial cells", NewRectF(105, 50, 60, 60), NewRect(10, 2, 7, 4)},
		{"above screen", NewRectF(0, -60, 60, 60), NewRect(0, -3, 6, 3)},
		{"partly above", NewRectF(0, -50, 60, 60), NewRect(0, -3, 6, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.ToCells(tc.in); got != tc.expected {
				t.Errorf("ToCells(%+v) = %+v, expected %+v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestActionTilt(t *testing.T) {
	if ActionTiltLeft.Tilt() <= 0 {
		t.Error("tilting left should produce a positive sensor value")
	}
	if ActionTiltRight.Tilt() >= 0 {
		t.Error("tilting right should produce a negative sensor value")
	}
	if ActionRestart.Tilt() != 0 {
		t.Error("non-tilt actions should produce zero tilt")
	}
}
