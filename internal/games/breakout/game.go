// Package breakout implements a brick breaker on top of the engine: a
// paddle keeps a persistent ball in play, steel blocks never break and
// clearing every brick wins.
package breakout

import (
	"fmt"

	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

const (
	ID    = "breakout"
	Title = "Breakout"
	Genre = "paddle"
)

func init() {
	registry.Register(registry.Info{ID: ID, Title: Title, Genre: Genre, Levels: LevelIDs()}, func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// New builds a Breakout controller. With opts.Level set, the named layout
// replaces the configured brick grid.
func New(opts registry.Options, eopts ...engine.Option) (*engine.Controller, error) {
	d, err := engine.LoadDescriptor(ID, Title, opts)
	if err != nil {
		return nil, err
	}
	if opts.Level != "" {
		if err := useLevel(d, opts.Level); err != nil {
			return nil, err
		}
	}
	return engine.New(d, append([]engine.Option{engine.WithLogger(opts.Logger)}, eopts...)...), nil
}

// useLevel swaps the grid wave for the bricks of a built-in level.
func useLevel(d *engine.Descriptor, id string) error {
	l, ok := LevelByID(id)
	if !ok {
		return fmt.Errorf("breakout: unknown level %q (have %v)", id, LevelIDs())
	}
	fx, err := l.Fixtures(d)
	if err != nil {
		return err
	}
	d.Title = Title + ": " + l.Name
	d.Wave.Grid.Rows = 0
	d.Wave.Grid.RowKinds = nil
	d.Fixtures = append(d.Fixtures, fx...)
	return nil
}
