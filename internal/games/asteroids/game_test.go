package asteroids

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

func start(t *testing.T) *engine.Controller {
	t.Helper()
	c, err := New(registry.Options{})
	require.NoError(t, err)
	c.Reset(core.RuntimeConfig{Seed: 11})
	in := core.NewInputFrame()
	in.Press(core.ActionStart)
	c.Step(in)
	return c
}

func TestOpeningField(t *testing.T) {
	c := start(t)
	p := c.Player()
	require.Equal(t, 4, c.World().Count(engine.VariantOpponent))
	c.World().Each(engine.VariantOpponent, func(e *engine.Entity) {
		require.Equal(t, "rock-large", e.Kind)
		require.GreaterOrEqual(t, e.Pos.DistSq(p.Pos), 120.0*120.0)
		require.InDelta(t, 0.4, e.Vel.Len(), 1e-9)
	})
}

func TestRockSplits(t *testing.T) {
	c := start(t)
	w := c.World()
	rock := w.First(engine.VariantOpponent)
	require.NotNil(t, rock)
	id := rock.ID
	w.Spawn(engine.Entity{
		Variant:  engine.VariantProjectile,
		Pos:      rock.Pos,
		Shape:    engine.Circle(2),
		Friendly: true,
		Damage:   1,
	})

	c.Step(core.NewInputFrame())
	require.Nil(t, w.Get(id))
	require.Equal(t, 20, c.State().Score)

	mediums := 0
	w.Each(engine.VariantOpponent, func(e *engine.Entity) {
		if e.Kind == "rock-medium" {
			mediums++
		}
	})
	require.Equal(t, 2, mediums)
	require.Equal(t, 5, w.Count(engine.VariantOpponent))
}

func TestHitRespawnsShip(t *testing.T) {
	c := start(t)
	p := c.Player()
	home := p.Pos
	p.Pos = core.V(80, 80)
	c.World().Spawn(engine.Entity{
		Variant: engine.VariantOpponent,
		Kind:    "rock-small",
		Pos:     p.Pos,
		Shape:   engine.Circle(8),
		Health:  1,
	})

	c.Step(core.NewInputFrame())
	require.Equal(t, 2, p.Health)
	require.Equal(t, home, p.Pos)
	require.Positive(t, p.Timers.Invulnerable)
	require.Equal(t, core.PhaseRunning, c.State().Phase)
}

func TestShipWraps(t *testing.T) {
	c := start(t)
	p := c.Player()
	p.Pos = core.V(599, 250)
	p.Vel = core.V(3, 0)

	c.Step(core.NewInputFrame())
	require.Less(t, p.Pos.X, 10.0)
	require.InDelta(t, 250.0, p.Pos.Y, 1e-9)
}

func TestThrustShotInheritsVelocity(t *testing.T) {
	c := start(t)
	p := c.Player()
	p.Vel = core.V(0, -2)

	in := core.NewInputFrame()
	in.Hold(core.ActionPrimary)
	c.Step(in)

	shot := c.World().First(engine.VariantProjectile)
	require.NotNil(t, shot)
	// Facing straight up: muzzle speed plus the ship's own drift.
	require.InDelta(t, -9-2*0.99, shot.Vel.Y, 1e-9)
	require.True(t, shot.Expires)
}
