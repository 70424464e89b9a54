// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an axis-aligned cell rectangle on a Screen or a display surface.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// WrapF maps val into [min, max) treating the range as toroidal.
// A value exactly on max maps to min; a degenerate range yields min.
func WrapF(val, min, max float64) float64 {
	span := max - min
	if span <= 0 {
		return min
	}
	v := math.Mod(val-min, span)
	if v < 0 {
		v += span
	}
	if v >= span {
		v = 0
	}
	return min + v
}
