package engine

import (
	"github.com/vovakirdan/neon-arcade/internal/core"
)

// applyBounds enforces the bounds mode of e's variant after integration.
// It reports false when the entity was culled.
func (c *Controller) applyBounds(e *Entity) bool {
	d := c.desc
	switch d.Bounds[e.Variant] {
	case BoundsWrap:
		s := d.Surface()
		e.Pos.X = core.WrapF(e.Pos.X, s.MinX, s.MaxX)
		e.Pos.Y = core.WrapF(e.Pos.Y, s.MinY, s.MaxY)
	case BoundsClamp:
		clampInto(e, d.Arena(), false, c.openBottom(e))
	case BoundsBounce:
		clampInto(e, d.Arena(), true, c.openBottom(e))
	case BoundsCull:
		if !e.Box().Overlaps(d.Surface()) {
			c.world.Kill(e)
			return false
		}
	}
	return true
}

func (c *Controller) openBottom(e *Entity) bool {
	return c.desc.OpenBottom && e.Variant != VariantPlayer
}

// clampInto pins e's extent inside area. With bounce set, the velocity
// component pointing out of the area is negated.
func clampInto(e *Entity, area core.Box, bounce, openBottom bool) {
	hw, hh := e.Shape.HalfExtents()
	minX, maxX := area.MinX+hw, area.MaxX-hw
	minY, maxY := area.MinY+hh, area.MaxY-hh
	if minX > maxX {
		minX, maxX = area.Center().X, area.Center().X
	}
	if minY > maxY {
		minY, maxY = area.Center().Y, area.Center().Y
	}

	if e.Pos.X < minX {
		e.Pos.X = minX
		if bounce && e.Vel.X < 0 {
			e.Vel.X = -e.Vel.X
		}
	} else if e.Pos.X > maxX {
		e.Pos.X = maxX
		if bounce && e.Vel.X > 0 {
			e.Vel.X = -e.Vel.X
		}
	}

	if e.Pos.Y < minY {
		e.Pos.Y = minY
		if bounce && e.Vel.Y < 0 {
			e.Vel.Y = -e.Vel.Y
		}
	} else if e.Pos.Y > maxY && !openBottom {
		e.Pos.Y = maxY
		if bounce && e.Vel.Y > 0 {
			e.Vel.Y = -e.Vel.Y
		}
	}
}

// atEdge reports whether e touches the left or right side of area.
func atEdge(e *Entity, area core.Box) (left, right bool) {
	hw, _ := e.Shape.HalfExtents()
	return e.Pos.X-hw <= area.MinX, e.Pos.X+hw >= area.MaxX
}

// pushOut separates a mover from a static box along the minimum penetration
// axis, optionally reflecting the mover's velocity on that axis.
func pushOut(mover *Entity, static core.Box, reflect bool) core.Axis {
	mb := mover.Box()
	axis, normal := core.Penetration(mb, static)
	switch axis {
	case core.AxisX:
		if normal < 0 {
			mover.Pos.X -= mb.MaxX - static.MinX
		} else {
			mover.Pos.X += static.MaxX - mb.MinX
		}
		if reflect && mover.Vel.X*normal < 0 {
			mover.Vel.X = -mover.Vel.X
		}
	case core.AxisY:
		if normal < 0 {
			mover.Pos.Y -= mb.MaxY - static.MinY
		} else {
			mover.Pos.Y += static.MaxY - mb.MinY
		}
		if reflect && mover.Vel.Y*normal < 0 {
			mover.Vel.Y = -mover.Vel.Y
		}
	}
	return axis
}
