package core

import "math"

// Epsilon is the distance below which a direction is considered undefined.
const Epsilon = 1e-6

// Vec2 is a 2D vector in logical simulation units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// LenSq returns the squared length.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the length.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector of v.
// ok is false when the length is below Epsilon; callers must skip the action
// rather than divide by a near-zero distance.
func (v Vec2) Normalize() (unit Vec2, ok bool) {
	l := v.Len()
	if l < Epsilon || math.IsNaN(l) {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Toward returns the unit vector pointing from v to target scaled by speed.
// ok is false when the points coincide.
func (v Vec2) Toward(target Vec2, speed float64) (Vec2, bool) {
	dir, ok := target.Sub(v).Normalize()
	if !ok {
		return Vec2{}, false
	}
	return dir.Scale(speed), true
}

// DistSq returns the squared distance between two points.
func (v Vec2) DistSq(o Vec2) float64 {
	return v.Sub(o).LenSq()
}

// FromAngle returns a vector of the given length pointing at angle radians.
func FromAngle(angle, length float64) Vec2 {
	return Vec2{math.Cos(angle) * length, math.Sin(angle) * length}
}

// Finite reports whether both components are finite numbers.
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
