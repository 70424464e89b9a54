package core

// Box is a float axis-aligned bounding box in simulation units.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoxAt returns the box of size w×h centred on c.
func BoxAt(c Vec2, w, h float64) Box {
	return Box{MinX: c.X - w/2, MinY: c.Y - h/2, MaxX: c.X + w/2, MaxY: c.Y + h/2}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b Box) Center() Vec2 {
	return Vec2{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// Inset shrinks the box by d on every side.
func (b Box) Inset(d float64) Box {
	return Box{MinX: b.MinX + d, MinY: b.MinY + d, MaxX: b.MaxX - d, MaxY: b.MaxY - d}
}

// Contains reports whether p lies inside the box (edges inclusive).
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Overlaps uses strict inequalities: touching edges do not collide.
func (b Box) Overlaps(o Box) bool {
	return b.MinX < o.MaxX && o.MinX < b.MaxX && b.MinY < o.MaxY && o.MinY < b.MaxY
}

// CirclesOverlap reports whether two circles collide.
// Compares squared distance against the squared radius sum; d == r1+r2 does not collide.
func CirclesOverlap(p1 Vec2, r1 float64, p2 Vec2, r2 float64) bool {
	sum := r1 + r2
	return p1.DistSq(p2) < sum*sum
}

// CircleBoxOverlap reports whether a circle intersects a box.
func CircleBoxOverlap(c Vec2, r float64, b Box) bool {
	nearest := Vec2{ClampF(c.X, b.MinX, b.MaxX), ClampF(c.Y, b.MinY, b.MaxY)}
	return c.DistSq(nearest) < r*r
}

// Axis names a collision resolution axis.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// Penetration returns the axis of minimum penetration of mover into target
// and the signed normal along it (pointing from target toward mover).
// Ties favour the vertical axis, which is what brick-and-paddle games expect.
func Penetration(mover, target Box) (Axis, float64) {
	if !mover.Overlaps(target) {
		return AxisNone, 0
	}
	left := mover.MaxX - target.MinX
	right := target.MaxX - mover.MinX
	top := mover.MaxY - target.MinY
	bottom := target.MaxY - mover.MinY

	minX, normX := left, -1.0
	if right < minX {
		minX, normX = right, 1.0
	}
	minY, normY := top, -1.0
	if bottom < minY {
		minY, normY = bottom, 1.0
	}
	if minY <= minX {
		return AxisY, normY
	}
	return AxisX, normX
}
