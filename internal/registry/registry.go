// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the interface the platform drives. Implementations hold pure
// simulation state; timing, input mapping and painting belong to the
// platform.
type Game interface {
	// ID returns the stable identifier used by the CLI, configs and replays.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset reseeds the session and returns it to the Idle phase.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by at most one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render paints the current state into dst. It must not mutate state.
	Render(dst *core.Screen)

	// State returns the HUD projection of the session.
	State() core.GameState
}

// Info contains metadata about a registered game.
type Info struct {
	ID    string
	Title string
	Genre string
	// Levels lists named layouts selectable through Options.Level.
	Levels []string
}

// Options are passed to a factory when a game is created.
type Options struct {
	// ConfigPath overrides the config search path when set.
	ConfigPath string
	// Preset is a difficulty preset name (easy, normal, hard, fixed).
	Preset string
	// Level selects a named layout for games that ship more than one.
	Level string
	// Logger receives engine diagnostics; nil discards them.
	Logger *log.Logger
}

// Factory creates a new instance of a game.
type Factory func(opts Options) (Game, error)

type entry struct {
	info    Info
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" || f == nil {
		panic("registry: Register needs an ID and a factory")
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered games, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	g, err := e.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// unregister removes a game; tests only.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(entries, id)
}
