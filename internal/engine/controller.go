package engine

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

var _ registry.Game = (*Controller)(nil)

// RunState is the per-session bookkeeping owned by the Controller.
type RunState struct {
	Phase    core.Phase
	Score    int
	Wave     int
	Tick     int
	Distance float64 // world units scrolled past the player
	Best     int     // survives restarts, never persisted
	Paused   bool
}

// Controller is the game-state machine around one World. It implements
// registry.Game, so every descriptor-driven game plugs into the platform
// without further code.
type Controller struct {
	desc       *Descriptor
	runtime    core.RuntimeConfig
	newRand    func(seed int64) Rand
	rng        Rand
	world      *World
	director   *Director
	difficulty *config.DifficultyManager
	logger     *log.Logger

	run          RunState
	player       Handle
	formationDir float64
	streamIn     int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes phase transitions and spawner diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRandSource replaces the seeded math/rand source.
func WithRandSource(fn func(seed int64) Rand) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newRand = fn
		}
	}
}

// New creates a controller in the Idle phase with a default runtime config.
func New(desc *Descriptor, opts ...Option) *Controller {
	c := &Controller{
		desc:    desc,
		newRand: NewRand,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset(core.DefaultConfig())
	return c
}

// ID returns the descriptor ID.
func (c *Controller) ID() string { return c.desc.ID }

// Title returns the descriptor title.
func (c *Controller) Title() string { return c.desc.Title }

// Descriptor returns the game descriptor.
func (c *Controller) Descriptor() *Descriptor { return c.desc }

// World exposes the entity arena for rendering and tests.
func (c *Controller) World() *World { return c.world }

// Run returns a copy of the run state.
func (c *Controller) Run() RunState { return c.run }

// Player returns the player entity, or nil before the first start.
func (c *Controller) Player() *Entity { return c.world.Get(c.player) }

// Reset reseeds the session and returns to Idle. The session best score is
// kept.
func (c *Controller) Reset(cfg core.RuntimeConfig) {
	c.runtime = cfg
	c.rng = c.newRand(cfg.Seed)
	c.world = NewWorld(c.desc.MaxEntities)
	c.director = NewDirector(c.desc, c.rng, c.logger)
	c.difficulty = config.NewDifficultyManager(c.desc.Difficulty)
	best := c.run.Best
	c.run = RunState{Phase: core.PhaseIdle, Best: best}
	c.player = 0
}

// Start runs the reset routine shared by Idle->Running and terminal->Running.
// It is a no-op while a run is in progress.
func (c *Controller) Start() {
	if c.run.Phase == core.PhaseRunning {
		return
	}
	c.world.Reset()
	c.difficulty = config.NewDifficultyManager(c.desc.Difficulty)
	c.run = RunState{Phase: core.PhaseRunning, Wave: 1, Best: c.run.Best}
	c.formationDir = 1
	c.streamIn = c.desc.Wave.Stream.Every

	sp := c.desc.Player
	p, _ := c.world.Spawn(Entity{
		Variant:   VariantPlayer,
		Kind:      "player",
		Pos:       sp.Start,
		Shape:     sp.Shape,
		Health:    sp.MaxHealth,
		MaxHealth: sp.MaxHealth,
		Facing:    -math.Pi / 2,
	})
	c.player = p.ID

	for _, f := range c.desc.Fixtures {
		if k := c.desc.Kind(f.Kind); k != nil {
			c.spawnKind(k, f.Pos)
		}
	}
	c.director.Populate(c.run.Phase, c.run.Wave, p.Pos, c.spawnKind)
	c.serve(p)
	c.logger.Debug("run started", "game", c.desc.ID, "seed", c.runtime.Seed)
}

// Step handles the phase machine and runs at most one simulation tick.
func (c *Controller) Step(in core.InputFrame) core.StepResult {
	if c.run.Phase != core.PhaseRunning {
		if in.WasPressed(core.ActionStart) {
			c.Start()
		}
		return core.StepResult{State: c.State()}
	}

	if in.WasPressed(core.ActionPause) {
		c.run.Paused = !c.run.Paused
	}
	if c.run.Paused {
		return core.StepResult{State: c.State()}
	}

	c.simulate(in)
	return core.StepResult{State: c.State(), Ticks: 1}
}

// State returns the HUD projection of the run.
func (c *Controller) State() core.GameState {
	s := core.GameState{
		Phase:     c.run.Phase,
		Score:     c.run.Score,
		BestScore: c.run.Best,
		Wave:      c.run.Wave,
		Paused:    c.run.Paused,
		MaxHealth: c.desc.Player.MaxHealth,
	}
	if p := c.Player(); p != nil {
		s.Health = p.Health
	}
	return s
}

// finish moves the run to a terminal phase.
func (c *Controller) finish(phase core.Phase) {
	if c.run.Phase != core.PhaseRunning {
		return
	}
	c.run.Phase = phase
	c.run.Best = max(c.run.Best, c.run.Score)
	c.logger.Debug("run finished", "game", c.desc.ID, "phase", phase, "score", c.run.Score, "wave", c.run.Wave, "tick", c.run.Tick)
}

// View is the read-only projection handed to descriptor hooks.
type View struct {
	c *Controller
}

// Score returns the current score.
func (v View) Score() int { return v.c.run.Score }

// Wave returns the current wave.
func (v View) Wave() int { return v.c.run.Wave }

// Tick returns the number of ticks simulated in this run.
func (v View) Tick() int { return v.c.run.Tick }

// Count returns the number of live entities of a variant.
func (v View) Count(variant Variant) int { return v.c.world.Count(variant) }

// Player returns a copy of the player entity.
func (v View) Player() Entity {
	if p := v.c.Player(); p != nil {
		return *p
	}
	return Entity{}
}

// Each visits copies of the live entities of a variant.
func (v View) Each(variant Variant, fn func(Entity)) {
	v.c.world.Each(variant, func(e *Entity) { fn(*e) })
}
