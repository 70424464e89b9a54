package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

const (
	// DefaultHoldTicks bridges the gap before terminal key repeat starts.
	DefaultHoldTicks = 12
	// helpRows is the height reserved below the playfield.
	helpRows = 1
)

// Options configure a play session.
type Options struct {
	FPS       int
	HoldTicks int
	Session   *Session
	Logger    *log.Logger

	// Keys overrides the bindings an engine-backed game carries.
	Keys map[core.Action][]string
	// WrapInput, when set, wraps the sampler the loop reads from, e.g. to
	// record a replay.
	WrapInput func(engine.InputSource) engine.InputSource
}

// describedGame is implemented by engine-backed games and exposes the
// logical surface size for pointer mapping.
type describedGame interface {
	Descriptor() *engine.Descriptor
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game    registry.Game
	loop    *engine.Loop
	sampler *engine.Sampler
	screen  *core.Screen
	keys    GameKeyMap
	help    help.Model
	session *Session
	logger  *log.Logger
	config  core.RuntimeConfig
	fps     int

	phase    core.Phase
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	hold := opts.HoldTicks
	if hold == 0 {
		hold = DefaultHoldTicks
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, h := float64(cfg.ScreenW), float64(cfg.ScreenH)
	keys := opts.Keys
	if dg, ok := game.(describedGame); ok && dg.Descriptor() != nil {
		d := dg.Descriptor()
		w, h = d.Width, d.Height
		if keys == nil {
			keys = d.Keys
		}
	}
	sampler := engine.NewSampler(w, h, hold)
	var input engine.InputSource = sampler
	if opts.WrapInput != nil {
		input = opts.WrapInput(sampler)
	}

	m := Model{
		game:    game,
		loop:    engine.NewLoop(game, input, cfg.TickRate),
		sampler: sampler,
		screen:  core.NewScreen(0, 0),
		keys:    NewGameKeyMap(keys),
		help:    help.New(),
		session: opts.Session,
		logger:  logger,
		config:  cfg,
		fps:     opts.FPS,
	}
	m.resize(cfg.ScreenW, cfg.ScreenH)
	game.Reset(cfg)
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey routes bound keys into the sampler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}
	for _, a := range m.keys.Actions(msg) {
		if a == core.ActionQuit {
			return m.quit()
		}
		m.sampler.Press(a)
	}
	return m, nil
}

// handleMouse maps the pointer into logical space. A left click fires and
// presses start; a running game ignores start.
func (m Model) handleMouse(msg tea.MouseMsg) {
	m.sampler.MovePointer(msg.X, msg.Y)
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.sampler.Press(core.ActionPrimary)
		m.sampler.Press(core.ActionStart)
	case tea.MouseActionRelease:
		m.sampler.Release(core.ActionPrimary)
	}
}

// resize keeps the playfield above the help bar and tells the sampler
// where it is displayed.
func (m *Model) resize(width, height int) {
	m.config.ScreenW = width
	m.config.ScreenH = height
	rows := max(height-helpRows, 0)
	m.screen.Resize(width, rows)
	m.sampler.SetSurface(core.NewRect(0, 0, width, rows))
	m.help.Width = width
}

// handleFrame advances the loop by the elapsed time and schedules the next
// frame. Nothing is scheduled once the loop is stopped.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.loop.Stopped() {
		return m, nil
	}
	m.loop.Advance(now)

	st := m.game.State()
	if st.Phase != m.phase {
		m.logger.Info("phase", "game", m.game.ID(), "from", m.phase, "to", st.Phase, "score", st.Score, "wave", st.Wave)
		m.phase = st.Phase
	}
	return m, frameCmd(m.fps)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.loop.Stop()
	m.quitting = true
	st := m.game.State()
	if m.session != nil {
		m.session.Record(m.game.ID(), max(st.BestScore, st.Score))
	}
	m.logger.Info("quit", "game", m.game.ID(), "best", st.BestScore, "ticks", m.loop.Ticks())
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Quitting reports whether the user left the game.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for one game and blocks until the user
// quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
