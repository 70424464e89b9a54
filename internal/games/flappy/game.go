// Package flappy is the one-button flyer. The bird only ever flaps; pipe
// pairs scroll in from the right and every pair cleared scores a point.
package flappy

import (
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

const (
	ID    = "flappy"
	Title = "Flappy Bird"
	Genre = "flyer"
)

func init() {
	registry.Register(registry.Info{ID: ID, Title: Title, Genre: Genre}, func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// New builds a Flappy Bird controller.
func New(opts registry.Options, eopts ...engine.Option) (*engine.Controller, error) {
	d, err := engine.LoadDescriptor(ID, Title, opts)
	if err != nil {
		return nil, err
	}
	return engine.New(d, append([]engine.Option{engine.WithLogger(opts.Logger)}, eopts...)...), nil
}
