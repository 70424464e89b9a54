package engine

import (
	"math"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

const (
	// maxDeflect is the steepest paddle rebound, measured from vertical.
	maxDeflect = math.Pi / 3
	// serveGap is the clearance between the player and a served projectile.
	serveGap = 40.0
)

// applyInput turns the sampled input into player motion and shots.
func (c *Controller) applyInput(p *Entity, in core.InputFrame) {
	sp := c.desc.Player

	switch sp.Motion {
	case MotionDirect:
		var dir core.Vec2
		if in.IsHeld(core.ActionLeft) {
			dir.X--
		}
		if in.IsHeld(core.ActionRight) {
			dir.X++
		}
		if in.IsHeld(core.ActionUp) {
			dir.Y--
		}
		if in.IsHeld(core.ActionDown) {
			dir.Y++
		}
		p.Vel = dir.Scale(sp.Speed)
		if !dir.IsZero() {
			p.Facing = math.Atan2(dir.Y, dir.X)
		}

	case MotionHorizontal:
		dx := 0.0
		if in.IsHeld(core.ActionLeft) {
			dx--
		}
		if in.IsHeld(core.ActionRight) {
			dx++
		}
		switch {
		case dx != 0:
			p.Vel = core.V(dx*sp.Speed, 0)
		case in.Aiming:
			p.Vel = core.V(core.ClampF(in.Pointer.X-p.Pos.X, -sp.Speed, sp.Speed), 0)
		default:
			p.Vel = core.Vec2{}
		}

	case MotionThrust:
		if in.IsHeld(core.ActionLeft) {
			p.Facing -= sp.Turn
		}
		if in.IsHeld(core.ActionRight) {
			p.Facing += sp.Turn
		}
		if in.IsHeld(core.ActionUp) {
			p.Vel = p.Vel.Add(core.FromAngle(p.Facing, sp.Thrust))
		}
		p.Vel = p.Vel.Scale(sp.Friction)

	case MotionJump, MotionFlap:
		c.applyImpulse(p, in)
	}

	if sp.Aim == AimPointer && in.Aiming {
		if dir, ok := p.Pos.Toward(in.Pointer, 1); ok {
			p.Facing = math.Atan2(dir.Y, dir.X)
		}
	}

	if sp.Aim == AimNone || sp.Projectile.Persistent {
		return
	}
	fire := in.WasPressed(core.ActionPrimary)
	if sp.FireOnHold {
		fire = in.IsHeld(core.ActionPrimary)
	}
	if fire && p.Timers.Cooldown == 0 {
		c.firePlayer(p)
	}
}

// groundSlack absorbs float error when testing contact with the ground line.
const groundSlack = 1e-6

// applyImpulse runs gravity motion. A jump needs the ground under the
// player; a flap only needs the cooldown to have run out.
func (c *Controller) applyImpulse(p *Entity, in core.InputFrame) {
	sp := c.desc.Player
	dx := 0.0
	if in.IsHeld(core.ActionLeft) {
		dx--
	}
	if in.IsHeld(core.ActionRight) {
		dx++
	}
	p.Vel.X = dx * sp.Speed

	want := in.WasPressed(core.ActionUp) || in.WasPressed(core.ActionPrimary)
	if want && p.Timers.Impulse == 0 && (sp.Motion == MotionFlap || c.grounded(p)) {
		p.Vel.Y = sp.Impulse
		p.Timers.Impulse = sp.ImpulseEvery
	}

	p.Vel.Y += sp.Gravity
	if sp.MaxFall > 0 && p.Vel.Y > sp.MaxFall {
		p.Vel.Y = sp.MaxFall
	}
}

// grounded reports whether the player stands on the ground line.
func (c *Controller) grounded(p *Entity) bool {
	_, hh := p.Shape.HalfExtents()
	return p.Pos.Y+hh >= c.desc.Player.Ground-groundSlack
}

// land stops the player on the ground line. It reports whether the player
// touched it this tick.
func (c *Controller) land(p *Entity) bool {
	if !c.desc.Player.Motion.impulse() {
		return false
	}
	_, hh := p.Shape.HalfExtents()
	floor := c.desc.Player.Ground - hh
	if p.Pos.Y < floor {
		return false
	}
	p.Pos.Y = floor
	if p.Vel.Y > 0 {
		p.Vel.Y = 0
	}
	return true
}

// firePlayer spawns one friendly projectile in the aim direction.
func (c *Controller) firePlayer(p *Entity) {
	sp := c.desc.Player
	pr := sp.Projectile

	dir := core.V(0, -1)
	if sp.Aim != AimUp {
		dir = core.FromAngle(p.Facing, 1)
	}
	vel := dir.Scale(pr.Speed)
	if sp.Motion == MotionThrust {
		vel = vel.Add(p.Vel)
	}

	_, hh := p.Shape.HalfExtents()
	origin := p.Pos
	if sp.Aim == AimUp {
		origin.Y -= hh
	}

	b := Entity{
		Variant:  VariantProjectile,
		Kind:     "shot",
		Pos:      origin,
		Vel:      vel,
		Shape:    Circle(pr.Radius),
		Health:   1,
		Friendly: true,
		Damage:   pr.Damage,
	}
	if pr.Lifetime > 0 {
		b.Expires = true
		b.Timers.Lifetime = pr.Lifetime
	}
	if _, ok := c.world.Spawn(b); ok {
		p.Timers.Cooldown = sp.FireCooldown
	}
}

// serve puts a persistent projectile into play when none is live.
func (c *Controller) serve(p *Entity) {
	pr := c.desc.Player.Projectile
	if !pr.Persistent || c.run.Phase != core.PhaseRunning {
		return
	}
	live := false
	c.world.Each(VariantProjectile, func(b *Entity) {
		if b.Friendly && b.Persistent {
			live = true
		}
	})
	if live {
		return
	}
	_, hh := p.Shape.HalfExtents()
	c.world.Spawn(Entity{
		Variant:    VariantProjectile,
		Kind:       "ball",
		Pos:        core.V(p.Pos.X, p.Pos.Y-hh-pr.Radius-serveGap),
		Vel:        pr.Serve,
		Shape:      Circle(pr.Radius),
		Health:     1,
		Friendly:   true,
		Persistent: true,
		Damage:     pr.Damage,
	})
}

// deflect rebounds a persistent projectile off the player. The exit angle
// depends on where it struck, up to maxDeflect at the edges.
func (c *Controller) deflect(b, p *Entity) {
	hw, hh := p.Shape.HalfExtents()
	if hw <= 0 {
		return
	}
	rel := core.ClampF((b.Pos.X-p.Pos.X)/hw, -1, 1)
	speed := b.Vel.Len()
	a := rel * maxDeflect
	b.Vel = core.V(speed*math.Sin(a), -speed*math.Cos(a))
	_, bh := b.Shape.HalfExtents()
	b.Pos.Y = p.Pos.Y - hh - bh
}

// hurtPlayer applies contact or projectile damage, respecting i-frames.
func (c *Controller) hurtPlayer(p *Entity, dmg int) {
	if dmg == 0 || p.Timers.Invulnerable > 0 {
		return
	}
	c.damagePlayer(p, dmg)
	if c.run.Phase != core.PhaseRunning {
		return
	}
	sp := c.desc.Player
	p.Timers.Invulnerable = sp.InvulnTicks
	if sp.RespawnOnHit {
		p.Pos = sp.Start
		p.Vel = core.Vec2{}
		p.Facing = -math.Pi / 2
	}
}

// damagePlayer lowers health, floored at zero. A negative amount removes all
// remaining health. Reaching zero ends the run in the same tick.
func (c *Controller) damagePlayer(p *Entity, dmg int) {
	if dmg < 0 {
		p.Health = 0
	} else {
		p.Health = max(p.Health-dmg, 0)
	}
	if p.Health == 0 {
		c.finish(core.PhaseOver)
	}
}
