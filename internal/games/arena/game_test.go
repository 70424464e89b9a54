package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

func start(t *testing.T, seed int64) *engine.Controller {
	t.Helper()
	c, err := New(registry.Options{})
	require.NoError(t, err)
	c.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	in := core.NewInputFrame()
	in.Press(core.ActionStart)
	c.Step(in)
	require.Equal(t, core.PhaseRunning, c.State().Phase)
	return c
}

func TestRegistered(t *testing.T) {
	info, ok := registry.Lookup(ID)
	require.True(t, ok)
	require.Equal(t, Title, info.Title)

	g, err := registry.Create(ID, registry.Options{Preset: "hard"})
	require.NoError(t, err)
	require.Equal(t, ID, g.ID())
}

func TestFirstRound(t *testing.T) {
	c := start(t, 42)
	w := c.World()
	require.Equal(t, 2, w.Count(engine.VariantObstacle), "pillars are placed on start")
	require.Equal(t, 5, w.Count(engine.VariantOpponent))

	p := c.Player()
	w.Each(engine.VariantOpponent, func(e *engine.Entity) {
		require.Equal(t, "chaser", e.Kind, "round 1 only has chasers")
		require.GreaterOrEqual(t, e.Pos.DistSq(p.Pos), 120.0*120.0)
	})
}

func TestPointerAim(t *testing.T) {
	c := start(t, 1)
	p := c.Player()

	in := core.NewInputFrame()
	in.Hold(core.ActionPrimary)
	in.Aiming = true
	in.Pointer = core.V(p.Pos.X+100, p.Pos.Y)
	c.Step(in)

	shot := c.World().First(engine.VariantProjectile)
	require.NotNil(t, shot)
	require.True(t, shot.Friendly)
	require.InDelta(t, 8.0, shot.Vel.X, 1e-9)
	require.InDelta(t, 0.0, shot.Vel.Y, 1e-9)
}

func TestRoundClearHeals(t *testing.T) {
	c := start(t, 7)
	p := c.Player()
	p.Health = 2
	w := c.World()
	w.Each(engine.VariantOpponent, w.Kill)

	c.Step(core.NewInputFrame())
	st := c.State()
	require.Equal(t, 2, st.Wave)
	require.Equal(t, 3, st.Health)
	require.Equal(t, 7, w.Count(engine.VariantOpponent))
}

func TestDeterministicRun(t *testing.T) {
	run := func() uint64 {
		c := start(t, 2024)
		for i := range 600 {
			in := core.NewInputFrame()
			in.Hold(core.ActionPrimary)
			in.Aiming = true
			in.Pointer = core.V(float64(i%700), float64((i*7)%500))
			if i%90 < 45 {
				in.Hold(core.ActionLeft)
			} else {
				in.Hold(core.ActionUp)
			}
			c.Step(in)
		}
		return c.Snapshot().Hash()
	}
	require.Equal(t, run(), run())
}
