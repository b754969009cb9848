// Package sensor provides orientation sources that feed tilt readings into
// the simulation: keyboard emulation, scripted playback and a websocket
// bridge for real phones.
package sensor

// Reading is one orientation sample. X is the horizontal tilt the game
// steers by; Y and Z are carried along for sources that report them.
type Reading struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Source produces readings on demand. Hosts call Sample once per sensor
// tick; ok is false when the source has nothing to report.
type Source interface {
	Sample() (r Reading, ok bool)
}

// Keyboard emulates a tilt sensor from key presses. A press sets the tilt
// for the next sample only, so letting go of the key stops the player.
type Keyboard struct {
	pending float64
}

// NewKeyboard creates a keyboard-driven source.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Press records a tilt to report on the next sample. Repeated presses
// before a sample keep the latest one.
func (k *Keyboard) Press(tilt float64) {
	k.pending = tilt
}

// Sample returns the pending tilt and resets it to level.
func (k *Keyboard) Sample() (Reading, bool) {
	r := Reading{X: k.pending}
	k.pending = 0
	return r, true
}

// Script replays a fixed sequence of tilt values, one per sample.
type Script struct {
	tilts []float64
	pos   int
}

// NewScript creates a source that plays back tilts in order.
func NewScript(tilts []float64) *Script {
	return &Script{tilts: tilts}
}

// Sample returns the next scripted tilt, or ok=false once exhausted.
func (s *Script) Sample() (Reading, bool) {
	if s.pos >= len(s.tilts) {
		return Reading{}, false
	}
	r := Reading{X: s.tilts[s.pos]}
	s.pos++
	return r, true
}

// Remaining returns how many samples are left.
func (s *Script) Remaining() int {
	return len(s.tilts) - s.pos
}

// Recorder wraps a source and keeps every tilt it hands out.
type Recorder struct {
	src   Source
	tilts []float64
}

// NewRecorder wraps src.
func NewRecorder(src Source) *Recorder {
	return &Recorder{src: src}
}

// Sample forwards to the wrapped source and records one tilt per call.
// A call with nothing to report is recorded as level so playback stays
// aligned with the sensor timer.
func (r *Recorder) Sample() (Reading, bool) {
	reading, ok := r.src.Sample()
	if ok {
		r.tilts = append(r.tilts, reading.X)
	} else {
		r.tilts = append(r.tilts, 0)
	}
	return reading, ok
}

// Tilts returns the recorded tilt values.
func (r *Recorder) Tilts() []float64 {
	return r.tilts
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.tilts = nil
}
