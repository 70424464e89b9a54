package invaders

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
	c.Reset(core.RuntimeConfig{Seed: 5})
	in := core.NewInputFrame()
	in.Press(core.ActionStart)
	c.Step(in)
	return c
}

func TestFormation(t *testing.T) {
	c := start(t)
	w := c.World()
	require.Equal(t, 40, w.Count(engine.VariantOpponent))

	first := w.First(engine.VariantOpponent)
	require.Equal(t, "squid", first.Kind)
	require.Equal(t, core.V(48, 74), first.Pos)
}

func TestFormationDropsAtEdge(t *testing.T) {
	c := start(t)
	first := c.World().First(engine.VariantOpponent)
	y0 := first.Pos.Y

	dropped := false
	for range 120 {
		c.Step(core.NewInputFrame())
		if first.Pos.Y > y0 {
			dropped = true
			break
		}
	}
	require.True(t, dropped, "formation never reached an edge")
	require.Equal(t, y0+15, first.Pos.Y)
	require.Negative(t, first.Vel.X, "formation reversed")
}

func TestLandingEndsRun(t *testing.T) {
	c := start(t)
	e := c.World().First(engine.VariantOpponent)
	e.Pos.Y = 458

	c.Step(core.NewInputFrame())
	st := c.State()
	require.Equal(t, core.PhaseOver, st.Phase)
	require.Equal(t, 0, st.Health)
}

func TestNextWaveIsFaster(t *testing.T) {
	c := start(t)
	w := c.World()
	w.Each(engine.VariantOpponent, w.Kill)
	c.Step(core.NewInputFrame())
	require.Equal(t, 2, c.State().Wave)
	require.Equal(t, 40, w.Count(engine.VariantOpponent))

	c.Step(core.NewInputFrame())
	e := w.First(engine.VariantOpponent)
	// Wave speed 0.8, scaled by difficulty level 1/5 at multiplier 0.3.
	require.InDelta(t, 0.8*1.06, e.Vel.X, 1e-9)
}
