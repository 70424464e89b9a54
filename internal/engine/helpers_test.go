package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// fixedRand always returns the same values.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

// testDescriptor is a 200x200 clamp arena with one static opponent kind.
func testDescriptor() *Descriptor {
	d := &Descriptor{
		ID:     "test",
		Title:  "Test Arena",
		Width:  200,
		Height: 200,
		Player: PlayerSpec{
			Shape:        Circle(5),
			Start:        core.V(100, 150),
			Speed:        2,
			MaxHealth:    3,
			InvulnTicks:  60,
			Aim:          AimUp,
			FireCooldown: 5,
			Friction:     1,
			Glyph:        '@',
			Projectile:   ProjectileSpec{Speed: 5, Radius: 1, Damage: 1, Glyph: '*'},
		},
		Kinds: map[string]*KindSpec{
			"dummy": {Name: "dummy", Variant: VariantOpponent, Shape: Circle(5), Health: 1, Reward: 10, ContactDamage: 1, Glyph: 'd'},
		},
		Wave: WaveSpec{
			Base:        1,
			Increment:   0,
			Layout:      LayoutScatter,
			DefaultKind: "dummy",
		},
		Rules: Rules{EscapeLine: 200, HealthLabel: "HP", WaveLabel: "WAVE"},
	}
	d.Bounds[VariantPlayer] = BoundsClamp
	d.Bounds[VariantOpponent] = BoundsClamp
	d.Bounds[VariantProjectile] = BoundsCull
	return d
}

// startedController starts a run and removes whatever the first wave spawned.
func startedController(t *testing.T, d *Descriptor) *Controller {
	t.Helper()
	c := New(d)
	c.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	c.Start()
	require.Equal(t, core.PhaseRunning, c.Run().Phase)
	c.world.Each(VariantOpponent, c.world.Kill)
	c.world.Compact()
	return c
}

// place spawns an entity of kind at pos and returns it.
func place(t *testing.T, c *Controller, kind string, pos core.Vec2) *Entity {
	t.Helper()
	k := c.desc.Kind(kind)
	require.NotNil(t, k, "unknown kind %q", kind)
	before := c.world.nextID
	require.True(t, c.spawnKind(k, pos))
	e := c.world.Get(before + 1)
	require.NotNil(t, e)
	return e
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func pressed(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Press(a)
	}
	return in
}

func held(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Hold(a)
	}
	return in
}
