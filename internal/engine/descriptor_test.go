package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

func TestFromConfigEmbeddedDefaults(t *testing.T) {
	for _, id := range config.DefaultIDs() {
		t.Run(id, func(t *testing.T) {
			cfg, err := config.Default(id)
			require.NoError(t, err)
			d, err := FromConfig(id, id, cfg)
			require.NoError(t, err)
			if d.Wave.Layout == LayoutGrid {
				require.NotEmpty(t, d.Wave.Grid.RowKinds)
				for _, name := range d.Wave.Grid.RowKinds {
					require.NotNil(t, d.Kind(name), "row kind %q must resolve", name)
				}
			} else {
				require.NotNil(t, d.Kind(d.Wave.DefaultKind), "default kind must resolve")
			}
			if st := d.Wave.Stream; st.PairKind != "" {
				require.NotNil(t, d.Kind(st.PairKind), "pair kind must resolve")
			}
			for _, m := range d.Wave.Mix {
				require.NotNil(t, d.Kind(m.Kind), "mix kind %q must resolve", m.Kind)
			}
			require.Positive(t, d.Rules.EscapeLine)

			c := New(d)
			c.Reset(core.RuntimeConfig{Seed: 3})
			res := c.Step(pressed(core.ActionStart))
			require.Equal(t, core.PhaseRunning, res.State.Phase)
			if !d.Wave.Stream.Enabled() {
				require.Positive(t, c.World().Count(VariantOpponent))
			}
			for range 120 {
				c.Step(held(core.ActionLeft, core.ActionPrimary))
			}
		})
	}
}

func TestFromConfigDefaults(t *testing.T) {
	cfg, err := config.Default("arena")
	require.NoError(t, err)
	cfg.Player.StartX, cfg.Player.StartY = 0, 0
	cfg.Rules.EscapeLine = 0
	cfg.Rules.HealthLabel = ""

	d, err := FromConfig("arena", "Arena", cfg)
	require.NoError(t, err)
	require.Equal(t, core.V(d.Width/2, d.Height/2), d.Player.Start)
	require.Equal(t, d.Height, d.Rules.EscapeLine)
	require.Equal(t, "HP", d.Rules.HealthLabel)
	require.Equal(t, BoundsNone, d.Bounds[VariantParticle], "unlisted variants are left unbounded")
}

func TestFromConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.GameConfig)
	}{
		{"bad bounds variant", func(c *config.GameConfig) { c.Surface.Bounds["ghost"] = "clamp" }},
		{"bad bounds mode", func(c *config.GameConfig) { c.Surface.Bounds["player"] = "teleport" }},
		{"bad motion", func(c *config.GameConfig) { c.Player.Motion = "hover" }},
		{"jump without gravity", func(c *config.GameConfig) {
			c.Player.Motion = "jump"
			c.Player.Impulse = -5
		}},
		{"flap with upward gravity", func(c *config.GameConfig) {
			c.Player.Motion = "flap"
			c.Player.Gravity = -0.4
			c.Player.Impulse = -8
		}},
		{"bad policy", func(c *config.GameConfig) {
			k := c.Kinds["chaser"]
			k.Policy = "orbit"
			c.Kinds["chaser"] = k
		}},
		{"invalid config", func(c *config.GameConfig) { c.Surface.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Default("arena")
			require.NoError(t, err)
			tt.mutate(&cfg)
			_, err = FromConfig("arena", "Arena", cfg)
			require.Error(t, err)
		})
	}
}

func TestFromConfigImpulseMotion(t *testing.T) {
	cfg, err := config.Default("arena")
	require.NoError(t, err)
	cfg.Player.Motion = "jump"
	cfg.Player.Gravity = 0.6
	cfg.Player.Impulse = -14

	d, err := FromConfig("arena", "Arena", cfg)
	require.NoError(t, err)
	require.Equal(t, MotionJump, d.Player.Motion)
	require.Equal(t, d.Arena().MaxY, d.Player.Ground, "ground defaults to the arena floor")

	cfg.Player.Motion = "flap"
	cfg.Player.Ground = 120
	d, err = FromConfig("arena", "Arena", cfg)
	require.NoError(t, err)
	require.Equal(t, MotionFlap, d.Player.Motion)
	require.Equal(t, 120.0, d.Player.Ground)
}

func TestKindSpeedAt(t *testing.T) {
	k := &KindSpec{Speed: 0.5, SpeedPerWave: 0.3, MaxSpeed: 1}
	require.InDelta(t, 0.5, k.SpeedAt(1), 1e-9)
	require.InDelta(t, 0.8, k.SpeedAt(2), 1e-9)
	require.InDelta(t, 1.0, k.SpeedAt(5), 1e-9)
}

func TestLoadDescriptorPreset(t *testing.T) {
	base, err := LoadDescriptor("arena", "Arena", registry.Options{})
	require.NoError(t, err)

	easy, err := LoadDescriptor("arena", "Arena", registry.Options{Preset: "easy"})
	require.NoError(t, err)
	require.Equal(t, base.Player.MaxHealth+2, easy.Player.MaxHealth)

	_, err = LoadDescriptor("arena", "Arena", registry.Options{Preset: "brutal"})
	require.Error(t, err)

	_, err = LoadDescriptor("arena", "Arena", registry.Options{ConfigPath: "/nonexistent/arena.yaml"})
	require.Error(t, err)
}
