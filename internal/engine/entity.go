// Package engine is the generic fixed-timestep arcade engine.
//
// A game is described by a Descriptor (kind catalog, spawn curve, bounds
// policy, win/loss rules). The Controller owns one RunState and one World
// and advances them one tick at a time; everything else in the package is
// plumbing around that step: the input sampler, the spawner, the renderer
// and the real-time loop that decides how many ticks to run per frame.
package engine

import (
	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Variant is the coarse role of an entity.
type Variant uint8

const (
	VariantPlayer Variant = iota
	VariantOpponent
	VariantProjectile
	VariantParticle
	VariantPickup
	VariantObstacle
	variantCount
)

var variantNames = [...]string{
	VariantPlayer:     "player",
	VariantOpponent:   "opponent",
	VariantProjectile: "projectile",
	VariantParticle:   "particle",
	VariantPickup:     "pickup",
	VariantObstacle:   "obstacle",
}

// String returns the config name of the variant.
func (v Variant) String() string {
	if v >= variantCount {
		return "unknown"
	}
	return variantNames[v]
}

// ParseVariant maps a config name to a Variant.
func ParseVariant(name string) (Variant, bool) {
	for v, n := range variantNames {
		if n == name {
			return Variant(v), true
		}
	}
	return 0, false
}

// ShapeKind selects the collision extent of an entity.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// Shape is an immutable collision extent. Rects are centred on the position.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	Width  float64
	Height float64
}

// Circle returns a circular shape.
func Circle(r float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: r}
}

// RectShape returns a rectangular shape.
func RectShape(w, h float64) Shape {
	return Shape{Kind: ShapeRect, Width: w, Height: h}
}

// HalfExtents returns the half width and half height of the bounding box.
func (s Shape) HalfExtents() (float64, float64) {
	if s.Kind == ShapeRect {
		return s.Width / 2, s.Height / 2
	}
	return s.Radius, s.Radius
}

// Box returns the bounding box of the shape placed at p.
func (s Shape) Box(p core.Vec2) core.Box {
	hw, hh := s.HalfExtents()
	return core.Box{MinX: p.X - hw, MinY: p.Y - hh, MaxX: p.X + hw, MaxY: p.Y + hh}
}

// Timers are per-entity countdowns, decremented once per tick with a floor of 0.
type Timers struct {
	Cooldown     int // attack / fire cooldown
	Invulnerable int // i-frames
	Lifetime     int // only meaningful when Entity.Expires is set
	Fire         int // opponent fire schedule
	Impulse      int // jump / flap cooldown
}

// tick advances every timer by one tick.
func (t *Timers) tick() {
	if t.Cooldown > 0 {
		t.Cooldown--
	}
	if t.Invulnerable > 0 {
		t.Invulnerable--
	}
	if t.Lifetime > 0 {
		t.Lifetime--
	}
	if t.Fire > 0 {
		t.Fire--
	}
	if t.Impulse > 0 {
		t.Impulse--
	}
}

// Handle identifies an entity within one World. Handles are never reused.
type Handle uint32

// Entity is a plain data record. Behaviour lives in the step functions.
type Entity struct {
	ID        Handle
	Variant   Variant
	Kind      string
	Pos       core.Vec2
	Vel       core.Vec2
	Shape     Shape
	Health    int
	MaxHealth int
	Timers    Timers
	Expires   bool // removed when Timers.Lifetime reaches 0

	// Facing is the heading in radians, used by thrust motion and facing aim.
	Facing float64

	// Projectile fields.
	Friendly   bool // fired or served by the player
	Persistent bool // bounces off targets instead of being consumed
	Damage     int

	// Passed is set once a scrolling entity has been scored.
	Passed bool

	dead bool
}

// Alive reports whether the entity has not been marked for removal.
func (e *Entity) Alive() bool {
	return e != nil && !e.dead
}

// Box returns the current bounding box.
func (e *Entity) Box() core.Box {
	return e.Shape.Box(e.Pos)
}

// Overlaps tests the exact shapes of two entities.
// Touching shapes do not overlap.
func (e *Entity) Overlaps(o *Entity) bool {
	switch {
	case e.Shape.Kind == ShapeCircle && o.Shape.Kind == ShapeCircle:
		return core.CirclesOverlap(e.Pos, e.Shape.Radius, o.Pos, o.Shape.Radius)
	case e.Shape.Kind == ShapeCircle:
		return core.CircleBoxOverlap(e.Pos, e.Shape.Radius, o.Box())
	case o.Shape.Kind == ShapeCircle:
		return core.CircleBoxOverlap(o.Pos, o.Shape.Radius, e.Box())
	default:
		return e.Box().Overlaps(o.Box())
	}
}
