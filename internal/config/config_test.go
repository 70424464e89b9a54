package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	ids := DefaultIDs()
	if len(ids) < 6 {
		t.Fatalf("DefaultIDs() = %v, expected at least 6 games", ids)
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			cfg, err := Default(id)
			if err != nil {
				t.Fatalf("Default(%q) error: %v", id, err)
			}
			if cfg.Surface.Width <= 0 || cfg.Surface.Height <= 0 {
				t.Errorf("surface = %vx%v, expected positive", cfg.Surface.Width, cfg.Surface.Height)
			}
			if cfg.Player.MaxHealth <= 0 {
				t.Errorf("player.max_health = %d, expected positive", cfg.Player.MaxHealth)
			}
			if len(cfg.Kinds) == 0 {
				t.Error("expected a non-empty kind catalog")
			}
		})
	}
}

func TestDefaultUnknownGame(t *testing.T) {
	_, err := Default("no-such-game")
	if !errors.Is(err, ErrNoDefault) {
		t.Errorf("Default() error = %v, expected ErrNoDefault", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yaml")
	data := []byte("player:\n  max_health: 9\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("arena", path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Player.MaxHealth != 9 {
		t.Errorf("MaxHealth = %d, expected 9", cfg.Player.MaxHealth)
	}
	// Keys not in the override keep their embedded values.
	if cfg.Surface.Width != 700 {
		t.Errorf("Surface.Width = %v, expected 700", cfg.Surface.Width)
	}
	if _, ok := cfg.Kinds["chaser"]; !ok {
		t.Error("expected embedded kind catalog to survive the overlay")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load("arena", filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() with missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("surface: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("arena", bad); err == nil {
		t.Error("Load() with malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("surface:\n  width: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("arena", invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, expected ErrInvalid", err)
	}
}

func TestLoadDoesNotMutateDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yaml")
	data := []byte("kinds:\n  chaser:\n    radius: 14\n    health: 7\n    policy: chaser\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("arena", path); err != nil {
		t.Fatal(err)
	}

	cfg, err := Default("arena")
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Kinds["chaser"].Health; got != 2 {
		t.Errorf("embedded chaser health = %d, expected 2", got)
	}
}

func TestValidate(t *testing.T) {
	base := func() GameConfig {
		return GameConfig{
			Surface: SurfaceConfig{Width: 100, Height: 100},
			Player:  PlayerConfig{MaxHealth: 3},
			Kinds: map[string]KindConfig{
				"big":   {SplitInto: "small", SplitCount: 2},
				"small": {},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		wantErr bool
	}{
		{"valid", func(*GameConfig) {}, false},
		{"zero surface", func(c *GameConfig) { c.Surface.Width = 0 }, true},
		{"no health", func(c *GameConfig) { c.Player.MaxHealth = 0 }, true},
		{"negative increment", func(c *GameConfig) { c.Wave.Increment = -1 }, true},
		{"unknown split", func(c *GameConfig) { c.Kinds["big"] = KindConfig{SplitInto: "dust"} }, true},
		{"self split", func(c *GameConfig) { c.Kinds["small"] = KindConfig{SplitInto: "small"} }, true},
		{"unknown mix", func(c *GameConfig) { c.Wave.Mix = []MixEntry{{Kind: "ghost"}} }, true},
		{"unknown row", func(c *GameConfig) { c.Wave.Grid.RowKinds = []string{"ghost"} }, true},
		{"unknown fixture", func(c *GameConfig) { c.Surface.Fixtures = []FixtureConfig{{Kind: "ghost"}} }, true},
		{"unknown default", func(c *GameConfig) { c.Wave.DefaultKind = "ghost" }, true},
		{"wave progression", func(c *GameConfig) { c.Difficulty.Progression.Type = "wave" }, false},
		{"unknown progression", func(c *GameConfig) { c.Difficulty.Progression.Type = "level" }, true},
		{"stream", func(c *GameConfig) { c.Wave.Stream = StreamConfig{Every: 90, Gap: 40, PairKind: "small"} }, false},
		{"negative stream", func(c *GameConfig) { c.Wave.Stream.Jitter = -1 }, true},
		{"unknown pair", func(c *GameConfig) { c.Wave.Stream = StreamConfig{Every: 90, PairKind: "ghost"} }, true},
		{"negative scroll", func(c *GameConfig) { c.Rules.Scroll = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, expected to wrap ErrInvalid", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantLevel   float64
		wantHealth  int
	}{
		{"", false, 0.5, 3},
		{DifficultyEasy, true, 0.0, 5},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 2},
		{DifficultyFixed, false, 0.5, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := GameConfig{
				Player:     PlayerConfig{MaxHealth: 3},
				Difficulty: DifficultyConfig{Enabled: false, InitialLevel: 0.5},
			}
			ApplyPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.wantEnabled)
			}
			if cfg.Difficulty.InitialLevel != tt.wantLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.wantLevel)
			}
			if cfg.Player.MaxHealth != tt.wantHealth {
				t.Errorf("MaxHealth = %d, expected %d", cfg.Player.MaxHealth, tt.wantHealth)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
	}{
		{"easy", DifficultyEasy},
		{"normal", DifficultyNormal},
		{"hard", DifficultyHard},
		{"fixed", DifficultyFixed},
		{"insane", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParsePreset(tt.in); got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestBindings(t *testing.T) {
	cfg := GameConfig{Keys: map[string][]string{
		"move-left":  {"h"},
		"teleport":   {"t"},
		"move-right": {},
	}}
	b := cfg.Bindings()

	if got := b[core.ActionLeft]; len(got) != 1 || got[0] != "h" {
		t.Errorf("Bindings()[left] = %v, expected [h]", got)
	}
	if got := b[core.ActionRight]; len(got) == 0 {
		t.Error("empty binding should fall back to the default keys")
	}
	if got := b[core.ActionQuit]; len(got) == 0 {
		t.Error("unbound quit should fall back to the default keys")
	}
}
