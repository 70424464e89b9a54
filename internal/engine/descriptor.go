package engine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
)

// BoundsMode is the per-variant policy applied after integration.
type BoundsMode uint8

const (
	BoundsNone   BoundsMode = iota
	BoundsClamp             // pin to the arena rectangle
	BoundsBounce            // pin and flip the outward velocity component
	BoundsWrap              // toroidal over the whole surface
	BoundsCull              // remove once fully outside the surface
)

// ParseBoundsMode maps a config name to a BoundsMode.
func ParseBoundsMode(name string) (BoundsMode, bool) {
	switch name {
	case "", "none":
		return BoundsNone, true
	case "clamp":
		return BoundsClamp, true
	case "bounce":
		return BoundsBounce, true
	case "wrap":
		return BoundsWrap, true
	case "cull":
		return BoundsCull, true
	}
	return BoundsNone, false
}

// Motion selects how input drives the player.
type Motion uint8

const (
	MotionDirect     Motion = iota // 8-way velocity
	MotionHorizontal               // left/right only, pointer follows on X
	MotionThrust                   // rotate, thrust, friction
	MotionJump                     // gravity, impulse only while grounded
	MotionFlap                     // gravity, impulse at any height
)

// impulse reports whether m is driven by gravity and jumps.
func (m Motion) impulse() bool {
	return m == MotionJump || m == MotionFlap
}

// AimMode selects the direction of player shots.
type AimMode uint8

const (
	AimNone AimMode = iota
	AimPointer
	AimFacing
	AimUp
)

// Policy is the behaviour of an opponent kind.
type Policy uint8

const (
	PolicyStatic Policy = iota
	PolicyChaser
	PolicyPatroller
	PolicyBouncer
	PolicyShooter
	PolicyDrifter
	PolicyScroller
)

var policyNames = map[string]Policy{
	"":          PolicyStatic,
	"static":    PolicyStatic,
	"chaser":    PolicyChaser,
	"patroller": PolicyPatroller,
	"bouncer":   PolicyBouncer,
	"shooter":   PolicyShooter,
	"drifter":   PolicyDrifter,
	"scroller":  PolicyScroller,
}

// Layout selects how the director places a wave.
type Layout uint8

const (
	LayoutScatter Layout = iota
	LayoutRing
	LayoutGrid
)

// ProjectileSpec describes what the player fires or serves.
type ProjectileSpec struct {
	Speed        float64
	Radius       float64
	Lifetime     int
	Damage       int
	Persistent   bool
	Serve        core.Vec2
	EscapeDamage int
	Glyph        rune
	Color        core.Color
}

// PlayerSpec describes the player entity.
type PlayerSpec struct {
	Shape        Shape
	Start        core.Vec2
	Speed        float64
	MaxHealth    int
	InvulnTicks  int
	Motion       Motion
	Turn         float64
	Thrust       float64
	Friction     float64
	Gravity      float64
	Impulse      float64
	MaxFall      float64
	ImpulseEvery int
	Ground       float64
	LethalBounds bool
	Aim          AimMode
	FireOnHold   bool
	FireCooldown int
	RespawnOnHit bool
	Deflect      bool
	Projectile   ProjectileSpec
	Glyph        rune
	Color        core.Color
}

// FireSpec makes a kind shoot on a timer.
type FireSpec struct {
	Every    int
	Jitter   int
	Speed    float64
	Radius   float64
	AtPlayer bool
}

// KindSpec is one entry of the kind catalog.
type KindSpec struct {
	Name          string
	Variant       Variant
	Shape         Shape
	Health        int
	Reward        int
	Speed         float64
	SpeedPerWave  float64
	MaxSpeed      float64
	Policy        Policy
	HoldDistance  float64
	Drop          float64
	Fire          *FireSpec
	SplitInto     string
	SplitCount    int
	ContactDamage int
	EscapeDamage  int
	Heal          int
	PassReward    int
	SpawnY        float64
	Lifetime      int
	Glyph         rune
	Color         core.Color
}

// SpeedAt returns the kind speed for a wave, before difficulty scaling.
func (k *KindSpec) SpeedAt(wave int) float64 {
	s := k.Speed + k.SpeedPerWave*float64(max(wave-1, 0))
	if k.MaxSpeed > 0 && s > k.MaxSpeed {
		s = k.MaxSpeed
	}
	return s
}

// MixEntry is a weighted kind choice unlocked from a wave on.
type MixEntry struct {
	Kind     string
	FromWave int
	Chance   float64
}

// GridSpec describes a formation layout.
type GridSpec struct {
	Rows, Cols   int
	Left, Top    float64
	StepX, StepY float64
	RowKinds     []string
}

// StreamSpec spawns entities at the right edge on a timer.
type StreamSpec struct {
	Every      int
	Jitter     int
	X          float64
	MinY, MaxY float64
	Gap        float64
	PairKind   string
	WaveTicks  int
}

// Enabled reports whether the stream replaces wave clearing.
func (s StreamSpec) Enabled() bool {
	return s.Every > 0
}

// WaveSpec is the spawn curve.
type WaveSpec struct {
	Base             int
	Increment        int
	Layout           Layout
	RingMin, RingMax float64
	MinSpawnDistance float64
	MaxRetries       int
	DefaultKind      string
	Mix              []MixEntry
	Grid             GridSpec
	ClearProjectiles bool
	PickupChance     float64
	PickupKind       string
	Stream           StreamSpec
}

// Rules are the win/loss and bookkeeping constants.
type Rules struct {
	WinScore      int
	WinWave       int
	Scroll        float64
	DistanceScore float64
	WinDistance   float64
	HealOnClear   int
	EscapeLine    float64
	ParticleBurst int
	ParticleTTL   int
	MaxParticles  int
	HealthLabel   string
	WaveLabel     string
}

// Hooks are optional per-game predicates evaluated after the built-in rules.
type Hooks struct {
	// Won reports a game-specific win condition.
	Won func(v View) bool
	// Lost reports a game-specific failure condition.
	Lost func(v View) bool
}

// Fixture is an entity placed once at the start of every run.
type Fixture struct {
	Kind string
	Pos  core.Vec2
}

// Descriptor parameterises the engine for one game.
type Descriptor struct {
	ID    string
	Title string

	Width, Height float64
	Inset         float64
	OpenBottom    bool
	Bounds        [variantCount]BoundsMode
	Fixtures      []Fixture

	Player      PlayerSpec
	Kinds       map[string]*KindSpec
	Wave        WaveSpec
	Rules       Rules
	MaxEntities int
	Difficulty  config.DifficultyConfig
	Hooks       Hooks
	// Keys maps each action to its key names, defaults included.
	Keys map[core.Action][]string
}

// Arena returns the clamp region.
func (d *Descriptor) Arena() core.Box {
	return core.Box{MaxX: d.Width, MaxY: d.Height}.Inset(d.Inset)
}

// Surface returns the wrap region.
func (d *Descriptor) Surface() core.Box {
	return core.Box{MaxX: d.Width, MaxY: d.Height}
}

// Kind returns the catalog entry for name, or nil.
func (d *Descriptor) Kind(name string) *KindSpec {
	return d.Kinds[name]
}

// FromConfig builds a Descriptor from a validated game config.
func FromConfig(id, title string, cfg config.GameConfig) (*Descriptor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %s: %w", id, err)
	}
	d := &Descriptor{
		ID:          id,
		Title:       title,
		Width:       cfg.Surface.Width,
		Height:      cfg.Surface.Height,
		Inset:       cfg.Surface.ArenaInset,
		OpenBottom:  cfg.Surface.OpenBottom,
		Kinds:       make(map[string]*KindSpec, len(cfg.Kinds)),
		MaxEntities: cfg.Wave.MaxEntities,
		Difficulty:  cfg.Difficulty,
		Keys:        cfg.Bindings(),
	}

	for name, mode := range cfg.Surface.Bounds {
		v, ok := ParseVariant(name)
		if !ok {
			return nil, fmt.Errorf("engine: %s: unknown variant %q in bounds", id, name)
		}
		m, ok := ParseBoundsMode(mode)
		if !ok {
			return nil, fmt.Errorf("engine: %s: unknown bounds mode %q", id, mode)
		}
		d.Bounds[v] = m
	}

	for _, f := range cfg.Surface.Fixtures {
		d.Fixtures = append(d.Fixtures, Fixture{Kind: f.Kind, Pos: core.V(f.X, f.Y)})
	}

	p, err := playerFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("engine: %s: %w", id, err)
	}
	d.Player = p

	for _, name := range cfg.KindNames() {
		k, err := kindFromConfig(name, cfg.Kinds[name])
		if err != nil {
			return nil, fmt.Errorf("engine: %s: %w", id, err)
		}
		d.Kinds[name] = k
	}

	w, err := waveFromConfig(cfg.Wave)
	if err != nil {
		return nil, fmt.Errorf("engine: %s: %w", id, err)
	}
	d.Wave = w

	r := cfg.Rules
	d.Rules = Rules{
		WinScore:      r.WinScore,
		WinWave:       r.WinWave,
		Scroll:        r.Scroll,
		DistanceScore: r.DistanceScore,
		WinDistance:   r.WinDistance,
		HealOnClear:   r.HealOnClear,
		EscapeLine:    r.EscapeLine,
		ParticleBurst: r.ParticleBurst,
		ParticleTTL:   r.ParticleTTL,
		MaxParticles:  r.MaxParticles,
		HealthLabel:   labelOr(r.HealthLabel, "HP"),
		WaveLabel:     labelOr(r.WaveLabel, "WAVE"),
	}
	if d.Rules.EscapeLine == 0 {
		d.Rules.EscapeLine = d.Height
	}
	if d.Player.Motion.impulse() && d.Player.Ground == 0 {
		d.Player.Ground = d.Arena().MaxY
	}
	return d, nil
}

func playerFromConfig(cfg config.GameConfig) (PlayerSpec, error) {
	pc := cfg.Player
	p := PlayerSpec{
		Shape:        shapeFromConfig(pc.ShapeConfig),
		Start:        core.V(pc.StartX, pc.StartY),
		Speed:        pc.Speed,
		MaxHealth:    pc.MaxHealth,
		InvulnTicks:  pc.InvulnTicks,
		Turn:         pc.Turn,
		Thrust:       pc.Thrust,
		Friction:     pc.Friction,
		Gravity:      pc.Gravity,
		Impulse:      pc.Impulse,
		MaxFall:      pc.MaxFall,
		ImpulseEvery: max(pc.ImpulseEvery, 0),
		Ground:       pc.Ground,
		LethalBounds: pc.LethalBounds,
		FireOnHold:   pc.FireOnHold,
		FireCooldown: pc.FireCooldown,
		RespawnOnHit: pc.RespawnOnHit,
		Deflect:      pc.Deflect,
		Glyph:        glyphOr(pc.Glyph, '@'),
		Color:        core.ParseColor(pc.Color),
	}
	if p.Start.X == 0 {
		p.Start.X = cfg.Surface.Width / 2
	}
	if p.Start.Y == 0 {
		p.Start.Y = cfg.Surface.Height / 2
	}
	if p.Friction == 0 {
		p.Friction = 1
	}

	switch pc.Motion {
	case "", "direct":
		p.Motion = MotionDirect
	case "horizontal":
		p.Motion = MotionHorizontal
	case "thrust":
		p.Motion = MotionThrust
	case "jump":
		p.Motion = MotionJump
	case "flap":
		p.Motion = MotionFlap
	default:
		return p, fmt.Errorf("unknown player motion %q", pc.Motion)
	}
	if p.Motion.impulse() && (p.Gravity <= 0 || p.Impulse >= 0) {
		return p, fmt.Errorf("player motion %q needs positive gravity and a negative impulse", pc.Motion)
	}

	switch pc.Aim {
	case "", "none":
		p.Aim = AimNone
	case "pointer":
		p.Aim = AimPointer
	case "facing":
		p.Aim = AimFacing
	case "up":
		p.Aim = AimUp
	default:
		return p, fmt.Errorf("unknown player aim %q", pc.Aim)
	}

	pr := pc.Projectile
	p.Projectile = ProjectileSpec{
		Speed:        pr.Speed,
		Radius:       pr.Radius,
		Lifetime:     pr.Lifetime,
		Damage:       max(pr.Damage, 1),
		Persistent:   pr.Persistent,
		Serve:        core.V(pr.ServeX, pr.ServeY),
		EscapeDamage: pr.EscapeDamage,
		Glyph:        glyphOr(pr.Glyph, '*'),
		Color:        core.ParseColor(pr.Color),
	}
	return p, nil
}

func kindFromConfig(name string, kc config.KindConfig) (*KindSpec, error) {
	v := VariantOpponent
	if kc.Variant != "" {
		var ok bool
		v, ok = ParseVariant(kc.Variant)
		if !ok {
			return nil, fmt.Errorf("kind %q: unknown variant %q", name, kc.Variant)
		}
	}
	pol, ok := policyNames[kc.Policy]
	if !ok {
		return nil, fmt.Errorf("kind %q: unknown policy %q", name, kc.Policy)
	}
	k := &KindSpec{
		Name:          name,
		Variant:       v,
		Shape:         shapeFromConfig(kc.ShapeConfig),
		Health:        max(kc.Health, 1),
		Reward:        kc.Reward,
		Speed:         kc.Speed,
		SpeedPerWave:  kc.SpeedPerWave,
		MaxSpeed:      kc.MaxSpeed,
		Policy:        pol,
		HoldDistance:  kc.HoldDistance,
		Drop:          kc.Drop,
		SplitInto:     kc.SplitInto,
		SplitCount:    kc.SplitCount,
		ContactDamage: kc.ContactDamage,
		EscapeDamage:  kc.EscapeDamage,
		Heal:          kc.Heal,
		PassReward:    kc.PassReward,
		SpawnY:        kc.SpawnY,
		Lifetime:      kc.Lifetime,
		Glyph:         glyphOr(kc.Glyph, 'x'),
		Color:         core.ParseColor(kc.Color),
	}
	if v == VariantOpponent && k.ContactDamage == 0 {
		k.ContactDamage = 1
	}
	if f := kc.Fire; f != nil {
		if f.Every <= 0 {
			return nil, fmt.Errorf("kind %q: fire.every must be positive", name)
		}
		k.Fire = &FireSpec{
			Every:    f.Every,
			Jitter:   max(f.Jitter, 0),
			Speed:    f.Speed,
			Radius:   f.Radius,
			AtPlayer: f.Aim != "down",
		}
		if k.Fire.Radius <= 0 {
			k.Fire.Radius = 4
		}
	}
	return k, nil
}

func waveFromConfig(wc config.WaveConfig) (WaveSpec, error) {
	w := WaveSpec{
		Base:             wc.Base,
		Increment:        wc.Increment,
		RingMin:          wc.RingMin,
		RingMax:          math.Max(wc.RingMax, wc.RingMin),
		MinSpawnDistance: wc.MinSpawnDistance,
		MaxRetries:       max(wc.MaxRetries, 0),
		DefaultKind:      wc.DefaultKind,
		ClearProjectiles: wc.ClearProjectiles,
		PickupChance:     wc.PickupChance,
		PickupKind:       wc.PickupKind,
		Stream: StreamSpec{
			Every:     wc.Stream.Every,
			Jitter:    wc.Stream.Jitter,
			X:         wc.Stream.X,
			MinY:      wc.Stream.MinY,
			MaxY:      math.Max(wc.Stream.MaxY, wc.Stream.MinY),
			Gap:       wc.Stream.Gap,
			PairKind:  wc.Stream.PairKind,
			WaveTicks: wc.Stream.WaveTicks,
		},
		Grid: GridSpec{
			Rows:     wc.Grid.Rows,
			Cols:     wc.Grid.Cols,
			Left:     wc.Grid.Left,
			Top:      wc.Grid.Top,
			StepX:    wc.Grid.StepX,
			StepY:    wc.Grid.StepY,
			RowKinds: wc.Grid.RowKinds,
		},
	}
	switch wc.Layout {
	case "", "scatter":
		w.Layout = LayoutScatter
	case "ring":
		w.Layout = LayoutRing
	case "grid":
		w.Layout = LayoutGrid
	default:
		return w, fmt.Errorf("unknown wave layout %q", wc.Layout)
	}
	for _, m := range wc.Mix {
		w.Mix = append(w.Mix, MixEntry{Kind: m.Kind, FromWave: m.FromWave, Chance: m.Chance})
	}
	return w, nil
}

func shapeFromConfig(sc config.ShapeConfig) Shape {
	if sc.Shape == "rect" {
		return RectShape(sc.Width, sc.Height)
	}
	return Circle(sc.Radius)
}

func glyphOr(s string, def rune) rune {
	for _, r := range s {
		return r
	}
	return def
}

func labelOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
