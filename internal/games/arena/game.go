// Package arena is a top-down survival shooter. Rounds of chasers,
// bouncers and shooters close in on a pointer-aimed player; clearing a
// round restores one point of health.
package arena

import (
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

const (
	ID    = "arena"
	Title = "Arena Blitz"
	Genre = "shooter"
)

func init() {
	registry.Register(registry.Info{ID: ID, Title: Title, Genre: Genre}, func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// New builds an Arena Blitz controller.
func New(opts registry.Options, eopts ...engine.Option) (*engine.Controller, error) {
	d, err := engine.LoadDescriptor(ID, Title, opts)
	if err != nil {
		return nil, err
	}
	return engine.New(d, append([]engine.Option{engine.WithLogger(opts.Logger)}, eopts...)...), nil
}
