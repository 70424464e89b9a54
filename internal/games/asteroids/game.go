// Package asteroids is the classic wrap-around rock shooter. Rocks split
// into smaller, faster rocks; a hit respawns the ship in the centre with a
// grace period.
package asteroids

import (
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

const (
	ID    = "asteroids"
	Title = "Asteroids"
	Genre = "shooter"
)

func init() {
	registry.Register(registry.Info{ID: ID, Title: Title, Genre: Genre}, func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// New builds an Asteroids controller.
func New(opts registry.Options, eopts ...engine.Option) (*engine.Controller, error) {
	d, err := engine.LoadDescriptor(ID, Title, opts)
	if err != nil {
		return nil, err
	}
	return engine.New(d, append([]engine.Option{engine.WithLogger(opts.Logger)}, eopts...)...), nil
}
