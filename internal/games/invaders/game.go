// Package invaders is a marching-formation shooter. The formation speeds up
// every wave and the run ends when it lands.
package invaders

import (
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

const (
	ID    = "invaders"
	Title = "Invaders"
	Genre = "shooter"
)

func init() {
	registry.Register(registry.Info{ID: ID, Title: Title, Genre: Genre}, func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// New builds an Invaders controller.
func New(opts registry.Options, eopts ...engine.Option) (*engine.Controller, error) {
	d, err := engine.LoadDescriptor(ID, Title, opts)
	if err != nil {
		return nil, err
	}
	d.Hooks.Lost = landed
	return engine.New(d, append([]engine.Option{engine.WithLogger(opts.Logger)}, eopts...)...), nil
}

// landed reports whether any invader has reached the player's row.
func landed(v engine.View) bool {
	p := v.Player()
	top := p.Box().MinY
	hit := false
	v.Each(engine.VariantOpponent, func(e engine.Entity) {
		if e.Box().MaxY >= top {
			hit = true
		}
	})
	return hit
}
