// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"sort"
)

// GameConfig is the complete tuning of one game variant.
// The engine turns it into a descriptor; nothing here has behaviour.
type GameConfig struct {
	Surface    SurfaceConfig         `yaml:"surface"`
	Player     PlayerConfig          `yaml:"player"`
	Kinds      map[string]KindConfig `yaml:"kinds"`
	Wave       WaveConfig            `yaml:"wave"`
	Rules      RulesConfig           `yaml:"rules"`
	Difficulty DifficultyConfig      `yaml:"difficulty"`
	Keys       map[string][]string   `yaml:"keys"`
}

// SurfaceConfig defines the fixed logical drawing surface.
type SurfaceConfig struct {
	Width      float64           `yaml:"width"`
	Height     float64           `yaml:"height"`
	ArenaInset float64           `yaml:"arena_inset"` // clamp region inset from the surface edge
	OpenBottom bool              `yaml:"open_bottom"` // non-player entities may leave through the bottom edge
	Bounds     map[string]string `yaml:"bounds"`      // variant -> wrap|clamp|bounce|cull
	Fixtures   []FixtureConfig   `yaml:"fixtures"`    // placed once per run, survive wave changes
}

// FixtureConfig places one entity of a kind at a fixed position.
type FixtureConfig struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// ShapeConfig describes a collision extent: a circle or a centred rectangle.
type ShapeConfig struct {
	Shape  string  `yaml:"shape"` // "circle" (default) or "rect"
	Radius float64 `yaml:"radius"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player entity and how input drives it.
type PlayerConfig struct {
	ShapeConfig  `yaml:",inline"`
	StartX       float64          `yaml:"start_x"` // 0 = centre of the surface
	StartY       float64          `yaml:"start_y"` // 0 = centre of the surface
	Speed        float64          `yaml:"speed"`
	MaxHealth    int              `yaml:"max_health"`
	InvulnTicks  int              `yaml:"invuln_ticks"`
	Motion       string           `yaml:"motion"` // direct|horizontal|thrust|jump|flap
	Turn         float64          `yaml:"turn"`
	Thrust       float64          `yaml:"thrust"`
	Friction     float64          `yaml:"friction"`
	Gravity      float64          `yaml:"gravity"`          // jump/flap: added to vertical velocity every tick
	Impulse      float64          `yaml:"impulse"`          // jump/flap: vertical velocity set by a jump, negative is up
	MaxFall      float64          `yaml:"max_fall"`         // terminal falling speed, 0 = unbounded
	ImpulseEvery int              `yaml:"impulse_cooldown"` // ticks between impulses
	Ground       float64          `yaml:"ground"`           // floor line for jump/flap, 0 = bottom of the arena
	LethalBounds bool             `yaml:"lethal_bounds"`    // touching the arena edge or the ground ends the run
	Aim          string           `yaml:"aim"`              // pointer|facing|up|none
	FireOnHold   bool             `yaml:"fire_on_hold"`
	FireCooldown int              `yaml:"fire_cooldown"`
	RespawnOnHit bool             `yaml:"respawn_on_hit"`
	Deflect      bool             `yaml:"deflect"`
	Projectile   ProjectileConfig `yaml:"projectile"`
	Glyph        string           `yaml:"glyph"`
	Color        string           `yaml:"color"`
}

// ProjectileConfig defines projectiles fired or served by the player.
type ProjectileConfig struct {
	Speed        float64 `yaml:"speed"`
	Radius       float64 `yaml:"radius"`
	Lifetime     int     `yaml:"lifetime"`      // ticks, 0 = until culled
	Damage       int     `yaml:"damage"`        // health removed per hit, default 1
	Persistent   bool    `yaml:"persistent"`    // bounces off targets instead of being consumed
	ServeX       float64 `yaml:"serve_vx"`      // serve velocity for persistent projectiles
	ServeY       float64 `yaml:"serve_vy"`
	EscapeDamage int     `yaml:"escape_damage"` // damage to the player when it crosses the escape line
	Glyph        string  `yaml:"glyph"`
	Color        string  `yaml:"color"`
}

// FireConfig makes an opponent kind shoot periodically.
type FireConfig struct {
	Every  int     `yaml:"every"`  // base ticks between shots
	Jitter int     `yaml:"jitter"` // random extra ticks added per shot
	Speed  float64 `yaml:"speed"`
	Radius float64 `yaml:"radius"`
	Aim    string  `yaml:"aim"` // player|down
}

// KindConfig defines one entity kind of the catalog.
type KindConfig struct {
	ShapeConfig   `yaml:",inline"`
	Variant       string      `yaml:"variant"` // opponent|obstacle|pickup
	Health        int         `yaml:"health"`
	Reward        int         `yaml:"reward"`
	Speed         float64     `yaml:"speed"`
	SpeedPerWave  float64     `yaml:"speed_per_wave"`
	MaxSpeed      float64     `yaml:"max_speed"`
	Policy        string      `yaml:"policy"` // static|chaser|patroller|bouncer|shooter|drifter|scroller
	HoldDistance  float64     `yaml:"hold_distance"`
	Drop          float64     `yaml:"drop"` // patroller formation drop on edge contact
	Fire          *FireConfig `yaml:"fire"`
	SplitInto     string      `yaml:"split_into"`
	SplitCount    int         `yaml:"split_count"`
	ContactDamage int         `yaml:"contact_damage"`
	EscapeDamage  int         `yaml:"escape_damage"` // -1 = all remaining health
	Heal          int         `yaml:"heal"`          // pickups only
	PassReward    int         `yaml:"pass_reward"`   // scored once the entity is fully behind the player
	SpawnY        float64     `yaml:"spawn_y"`       // stream spawn height, 0 = random within the stream range
	Lifetime      int         `yaml:"lifetime"`      // ticks before despawn, 0 = none
	Glyph         string      `yaml:"glyph"`
	Color         string      `yaml:"color"`
}

// MixEntry weights a kind into the random wave mix from a given wave on.
type MixEntry struct {
	Kind     string  `yaml:"kind"`
	FromWave int     `yaml:"from_wave"`
	Chance   float64 `yaml:"chance"`
}

// GridConfig lays a wave out as a formation.
type GridConfig struct {
	Rows     int      `yaml:"rows"`
	Cols     int      `yaml:"cols"`
	Left     float64  `yaml:"left"`
	Top      float64  `yaml:"top"`
	StepX    float64  `yaml:"step_x"`
	StepY    float64  `yaml:"step_y"`
	RowKinds []string `yaml:"row_kinds"`
}

// WaveConfig defines the spawn curve of the director.
type WaveConfig struct {
	Base             int          `yaml:"base"`
	Increment        int          `yaml:"increment"`
	Layout           string       `yaml:"layout"` // ring|scatter|grid
	RingMin          float64      `yaml:"ring_min"`
	RingMax          float64      `yaml:"ring_max"`
	MinSpawnDistance float64      `yaml:"min_spawn_distance"`
	MaxRetries       int          `yaml:"max_retries"`
	MaxEntities      int          `yaml:"max_entities"`
	DefaultKind      string       `yaml:"default_kind"`
	Mix              []MixEntry   `yaml:"mix"`
	Grid             GridConfig   `yaml:"grid"`
	ClearProjectiles bool         `yaml:"clear_projectiles"`
	PickupChance     float64      `yaml:"pickup_chance"`
	PickupKind       string       `yaml:"pickup_kind"`
	Stream           StreamConfig `yaml:"stream"`
}

// StreamConfig spawns entities on a timer at the right edge instead of in
// cleared waves. Runner and flyer games scroll their obstacles this way.
type StreamConfig struct {
	Every     int     `yaml:"every"`  // base ticks between spawns, 0 = no stream
	Jitter    int     `yaml:"jitter"` // random extra ticks per spawn
	X         float64 `yaml:"x"`      // spawn centre, 0 = just past the right edge
	MinY      float64 `yaml:"min_y"`
	MaxY      float64 `yaml:"max_y"`
	Gap       float64 `yaml:"gap"`        // > 0 spawns a pair above and below a gap centred on y
	PairKind  string  `yaml:"pair_kind"`  // kind of the lower piece, default the picked kind
	WaveTicks int     `yaml:"wave_ticks"` // the wave counter advances every this many ticks, 0 = never
}

// RulesConfig holds win/loss and scoring rules.
type RulesConfig struct {
	WinScore      int     `yaml:"win_score"`      // 0 = no score win
	WinWave       int     `yaml:"win_wave"`       // run is won when this wave is cleared, 0 = endless
	Scroll        float64 `yaml:"scroll"`         // distance covered per tick, scaled by difficulty
	DistanceScore float64 `yaml:"distance_score"` // points per unit of distance
	WinDistance   float64 `yaml:"win_distance"`   // run is won at this distance, 0 = none
	HealOnClear   int     `yaml:"heal_on_clear"`
	EscapeLine    float64 `yaml:"escape_line"`
	ParticleBurst int     `yaml:"particle_burst"`
	ParticleTTL   int     `yaml:"particle_ttl"`
	MaxParticles  int     `yaml:"max_particles"`
	HealthLabel   string  `yaml:"health_label"`
	WaveLabel     string  `yaml:"wave_label"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", "wave" or "none"
	MaxAt int    `yaml:"max_at"` // Score, ticks or waves past the first at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to opponent speed at max difficulty
	FireReduction   int     `yaml:"fire_reduction"`   // Ticks removed from fire intervals at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI flag value to a preset; unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth += 2
	case DifficultyHard:
		if cfg.Player.MaxHealth > 1 {
			cfg.Player.MaxHealth--
		}
	}
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the structural invariants the engine relies on.
func (c GameConfig) Validate() error {
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("%w: surface must have positive size, got %vx%v", ErrInvalid, c.Surface.Width, c.Surface.Height)
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("%w: player.max_health must be positive", ErrInvalid)
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time", "wave":
	default:
		return fmt.Errorf("%w: unknown difficulty progression %q", ErrInvalid, c.Difficulty.Progression.Type)
	}
	if c.Wave.Base < 0 || c.Wave.Increment < 0 {
		return fmt.Errorf("%w: wave base/increment must not be negative", ErrInvalid)
	}
	for _, name := range c.KindNames() {
		k := c.Kinds[name]
		if k.SplitInto != "" {
			if _, ok := c.Kinds[k.SplitInto]; !ok {
				return fmt.Errorf("%w: kind %q splits into unknown kind %q", ErrInvalid, name, k.SplitInto)
			}
			if k.SplitInto == name {
				return fmt.Errorf("%w: kind %q splits into itself", ErrInvalid, name)
			}
		}
	}
	for _, m := range c.Wave.Mix {
		if _, ok := c.Kinds[m.Kind]; !ok {
			return fmt.Errorf("%w: wave mix references unknown kind %q", ErrInvalid, m.Kind)
		}
	}
	for _, rk := range c.Wave.Grid.RowKinds {
		if _, ok := c.Kinds[rk]; !ok {
			return fmt.Errorf("%w: grid row references unknown kind %q", ErrInvalid, rk)
		}
	}
	for _, f := range c.Surface.Fixtures {
		if _, ok := c.Kinds[f.Kind]; !ok {
			return fmt.Errorf("%w: fixture references unknown kind %q", ErrInvalid, f.Kind)
		}
	}
	if c.Wave.Stream.Every < 0 || c.Wave.Stream.Jitter < 0 || c.Wave.Stream.WaveTicks < 0 {
		return fmt.Errorf("%w: stream timings must not be negative", ErrInvalid)
	}
	if k := c.Wave.Stream.PairKind; k != "" {
		if _, ok := c.Kinds[k]; !ok {
			return fmt.Errorf("%w: stream pair references unknown kind %q", ErrInvalid, k)
		}
	}
	if c.Rules.Scroll < 0 || c.Rules.WinDistance < 0 {
		return fmt.Errorf("%w: scroll and win_distance must not be negative", ErrInvalid)
	}
	if c.Wave.DefaultKind != "" {
		if _, ok := c.Kinds[c.Wave.DefaultKind]; !ok {
			return fmt.Errorf("%w: unknown default kind %q", ErrInvalid, c.Wave.DefaultKind)
		}
	}
	return nil
}

// KindNames returns the kind catalog names sorted, for stable iteration.
func (c GameConfig) KindNames() []string {
	names := make([]string, 0, len(c.Kinds))
	for name := range c.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
