package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilt-dodge/internal/config"
	"github.com/vovakirdan/tilt-dodge/internal/core"
	"github.com/vovakirdan/tilt-dodge/internal/dodge"
	"github.com/vovakirdan/tilt-dodge/internal/loop"
	"github.com/vovakirdan/tilt-dodge/internal/sensor"
	"github.com/vovakirdan/tilt-dodge/internal/storage"
)

// footerRows is the space kept below the playfield for status and help.
const footerRows = 1

// Options configures a Model.
type Options struct {
	Config  config.DodgeConfig
	Runtime core.RuntimeConfig // Terminal size and first-round seed

	// Source supplies tilt readings. Nil means keyboard tilt.
	Source sensor.Source

	// Store receives a recording of every finished round. May be nil.
	Store *storage.Store
}

// Model is the Bubble Tea model for the dodge game.
type Model struct {
	cfg      config.DodgeConfig
	iv       loop.Intervals
	runtime  core.RuntimeConfig
	sim      *dodge.Sim
	vp       core.Viewport
	screen   *core.Screen
	keyboard *sensor.Keyboard // Nil when another source steers
	recorder *sensor.Recorder
	store    *storage.Store
	keys     KeyMap
	help     help.Model

	seed     int64
	epoch    int
	started  time.Time
	saved    bool
	savedID  string
	quitting bool
	now      func() time.Time
}

// NewModel creates a model sized to opts.Runtime.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	keys := DefaultKeyMap()
	src := opts.Source
	var kb *sensor.Keyboard
	if src == nil {
		kb = sensor.NewKeyboard()
		src = kb
	} else {
		keys.Left.SetEnabled(false)
		keys.Right.SetEnabled(false)
	}

	m := Model{
		cfg:      opts.Config,
		iv:       loop.IntervalsFrom(opts.Config.Timing),
		runtime:  rt,
		keyboard: kb,
		recorder: sensor.NewRecorder(src),
		store:    opts.Store,
		keys:     keys,
		help:     help.New(),
		seed:     rt.Seed,
		now:      time.Now,
	}
	m.layout(rt.ScreenW, rt.ScreenH)
	m.started = m.now()
	return m
}

// Init starts the first round's timers.
func (m Model) Init() tea.Cmd {
	return scheduleTicks(m.epoch, m.iv)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case SensorTickMsg:
		if !m.live(msg.Epoch) {
			return m, nil
		}
		if r, ok := m.recorder.Sample(); ok {
			m.sim.Tilt(r.X)
		}
		return m.afterTick(sensorTickCmd(m.epoch, m.iv.Sensor))

	case SpawnTickMsg:
		if !m.live(msg.Epoch) {
			return m, nil
		}
		m.sim.Spawn()
		return m.afterTick(spawnTickCmd(m.epoch, m.iv.Spawn))

	case FallTickMsg:
		if !m.live(msg.Epoch) {
			return m, nil
		}
		m.sim.Fall()
		return m.afterTick(fallTickCmd(m.epoch, m.iv.Fall))
	}

	return m, nil
}

// live reports whether a tick from epoch should still run. Ticks from an
// earlier round, or any tick once the round is over, end their chain.
func (m Model) live(epoch int) bool {
	return epoch == m.epoch && m.sim.State() == dodge.StateActive
}

// afterTick reschedules a timer while the round is active. The tick that
// ended the round is not rescheduled, which deregisters its timer; the
// other two chains stop at their next tick.
func (m Model) afterTick(next tea.Cmd) (tea.Model, tea.Cmd) {
	if m.sim.State() == dodge.StateOver {
		m.saveRecording()
		return m, nil
	}
	return m, next
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionTiltLeft, core.ActionTiltRight:
		if m.keyboard != nil {
			m.keyboard.Press(action.Tilt())
		}
	case core.ActionRestart:
		if m.sim.State() == dodge.StateOver {
			return m.restart()
		}
	}
	return m, nil
}

// handleMouse treats a left click on the restart control as a tap.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.sim.State() != dodge.StateOver {
		return m, nil
	}
	if dodge.RestartButton(m.screen.Width(), m.screen.Height()).Contains(msg.X, msg.Y) {
		return m.restart()
	}
	return m, nil
}

// handleResize rebuilds the playfield for the new terminal size and starts
// a fresh round, since the old positions no longer fit.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.runtime.ScreenW && msg.Height == m.runtime.ScreenH {
		return m, nil
	}
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.layout(msg.Width, msg.Height)
	return m.newRound()
}

// restart begins the next round with a new seed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.seed = m.now().UnixNano()
	m.sim.Reseed(m.seed)
	m.sim.Restart()
	return m.newRound()
}

// newRound bumps the epoch and starts exactly one chain per timer.
func (m Model) newRound() (tea.Model, tea.Cmd) {
	m.epoch++
	m.recorder.Reset()
	m.started = m.now()
	m.saved = false
	m.savedID = ""
	return m, scheduleTicks(m.epoch, m.iv)
}

// layout sizes the screen, viewport and simulation for a cols x rows terminal.
func (m *Model) layout(cols, rows int) {
	fieldRows := core.Max(1, rows-footerRows)
	cols = core.Max(1, cols)

	m.vp = core.NewViewport(cols, fieldRows, m.cfg.Viewport.CellWidth, m.cfg.Viewport.CellHeight)
	if m.screen == nil {
		m.screen = core.NewScreen(cols, fieldRows)
	} else {
		m.screen.Resize(cols, fieldRows)
	}
	m.sim = dodge.New(m.cfg, m.vp.Width(), m.vp.Height(), m.seed)
	m.help.Width = cols
}

// saveRecording stores the finished round once.
func (m *Model) saveRecording() {
	if m.saved {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}

	tilts := append([]float64(nil), m.recorder.Tilts()...)
	id, err := m.store.SaveRecording(storage.Recording{
		Seed:     m.seed,
		ScreenW:  m.vp.Width(),
		ScreenH:  m.vp.Height(),
		Duration: m.now().Sub(m.started),
		Tilts:    tilts,
	})
	if err == nil {
		m.savedID = id
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.sim.Render(m.screen, m.vp)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.savedID != "" {
		return statusStyle.Render("saved "+shortID(m.savedID)+"  ") + m.help.View(m.keys)
	}
	return m.help.View(m.keys)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Sim exposes the simulation, mainly for tests and embedding hosts.
func (m Model) Sim() *dodge.Sim {
	return m.sim
}

// Epoch returns the current timer epoch.
func (m Model) Epoch() int {
	return m.epoch
}

// Run starts the Bubble Tea program with a model built from opts.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
