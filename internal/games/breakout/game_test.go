package breakout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

func start(t *testing.T, opts registry.Options) *engine.Controller {
	t.Helper()
	c, err := New(opts)
	require.NoError(t, err)
	c.Reset(core.RuntimeConfig{Seed: 3})
	in := core.NewInputFrame()
	in.Press(core.ActionStart)
	c.Step(in)
	require.Equal(t, core.PhaseRunning, c.State().Phase)
	return c
}

func TestWall(t *testing.T) {
	c := start(t, registry.Options{})
	w := c.World()
	require.Equal(t, 60, w.Count(engine.VariantOpponent))
	require.Equal(t, 2, w.Count(engine.VariantObstacle))
	require.Equal(t, 1, w.Count(engine.VariantProjectile), "ball is served on start")

	ball := w.First(engine.VariantProjectile)
	require.True(t, ball.Persistent)
	require.Equal(t, core.V(3, -4), ball.Vel)
}

func TestClearingTheWallWins(t *testing.T) {
	c := start(t, registry.Options{})
	w := c.World()
	w.Each(engine.VariantOpponent, w.Kill)
	c.Step(core.NewInputFrame())
	require.Equal(t, core.PhaseWon, c.State().Phase)
}

func TestLostBallCostsALife(t *testing.T) {
	c := start(t, registry.Options{})
	w := c.World()
	ball := w.First(engine.VariantProjectile)
	ball.Pos = core.V(240, 525)
	ball.Vel = core.V(0, 6)

	c.Step(core.NewInputFrame())
	require.Equal(t, 2, c.State().Health)
	require.False(t, ball.Alive())

	next := w.First(engine.VariantProjectile)
	require.NotNil(t, next)
	require.Less(t, next.Pos.Y, c.Player().Pos.Y)
}

func TestPaddleReturnsBall(t *testing.T) {
	c := start(t, registry.Options{})
	p := c.Player()
	ball := c.World().First(engine.VariantProjectile)
	ball.Pos = core.V(p.Pos.X, p.Pos.Y-14)
	ball.Vel = core.V(0, 4)

	c.Step(core.NewInputFrame())
	require.Negative(t, ball.Vel.Y)
	require.Equal(t, 3, c.State().Health)
}

func TestSteelNeverBreaks(t *testing.T) {
	c := start(t, registry.Options{})
	w := c.World()
	steel := w.First(engine.VariantObstacle)
	ball := w.First(engine.VariantProjectile)
	ball.Pos = core.V(steel.Pos.X, steel.Pos.Y+15)
	ball.Vel = core.V(0, -4)

	c.Step(core.NewInputFrame())
	require.True(t, steel.Alive())
	require.Positive(t, ball.Vel.Y, "ball bounced off steel")
}

func TestLevels(t *testing.T) {
	for _, id := range LevelIDs() {
		t.Run(id, func(t *testing.T) {
			l, ok := LevelByID(id)
			require.True(t, ok)
			c := start(t, registry.Options{Level: id})
			require.Equal(t, l.Breakable(), c.World().Count(engine.VariantOpponent))
			require.Contains(t, c.Title(), l.Name)
		})
	}

	_, err := New(registry.Options{Level: "nope"})
	require.Error(t, err)
}

func TestLevelFixtures(t *testing.T) {
	d, err := engine.LoadDescriptor(ID, Title, registry.Options{})
	require.NoError(t, err)

	fx, err := Level{ID: "t", Lines: []string{"#.H", "..X"}}.Fixtures(d)
	require.NoError(t, err)
	require.Len(t, fx, 3)
	require.Equal(t, engine.Fixture{Kind: KindSoft, Pos: core.V(26, 59)}, fx[0])
	require.Equal(t, KindHard, fx[1].Kind)
	require.Equal(t, engine.Fixture{Kind: KindSteel, Pos: core.V(4+2*48+22, 50+22+9)}, fx[2])

	delete(d.Kinds, KindMid)
	_, err = Level{ID: "m", Lines: []string{"M"}}.Fixtures(d)
	require.Error(t, err)
}
