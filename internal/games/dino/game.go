// Package dino is the endless runner. The runner jumps over ground cacti
// and under hovering drones while the track speeds up with the score.
package dino

import (
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

const (
	ID    = "dino"
	Title = "Dino Runner"
	Genre = "runner"
)

func init() {
	registry.Register(registry.Info{ID: ID, Title: Title, Genre: Genre}, func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// New builds a Dino Runner controller.
func New(opts registry.Options, eopts ...engine.Option) (*engine.Controller, error) {
	d, err := engine.LoadDescriptor(ID, Title, opts)
	if err != nil {
		return nil, err
	}
	return engine.New(d, append([]engine.Option{engine.WithLogger(opts.Logger)}, eopts...)...), nil
}
