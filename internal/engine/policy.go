package engine

import (
	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
)

// shooterDamping slows a shooter once it is inside its hold distance.
const shooterDamping = 0.95

// runPolicies drives every opponent in insertion order.
func (c *Controller) runPolicies(p *Entity) {
	c.stepFormation()

	c.world.Each(VariantOpponent, func(e *Entity) {
		k := c.desc.Kind(e.Kind)
		if k == nil {
			return
		}
		speed := c.speedOf(k)

		switch k.Policy {
		case PolicyChaser:
			// Coinciding with the player leaves no direction to chase in.
			if v, ok := e.Pos.Toward(p.Pos, speed); ok {
				e.Vel = v
			} else {
				e.Vel = core.Vec2{}
			}
		case PolicyPatroller:
			e.Vel = core.V(c.formationDir*speed, 0)
		case PolicyBouncer:
			if e.Vel.IsZero() {
				e.Vel = randomVelocity(c.rng, speed)
			}
		case PolicyShooter:
			if k.HoldDistance > 0 && e.Pos.DistSq(p.Pos) <= k.HoldDistance*k.HoldDistance {
				e.Vel = e.Vel.Scale(shooterDamping)
			} else if v, ok := e.Pos.Toward(p.Pos, speed); ok {
				e.Vel = v
			}
		case PolicyScroller:
			e.Vel = core.V(-speed, 0)
		}

		if k.Fire != nil && e.Timers.Fire == 0 {
			c.fireOpponent(e, k, p)
			e.Timers.Fire = jitter(c.rng, c.difficulty.FireInterval(k.Fire.Every, c.progress()), k.Fire.Jitter)
		}
	})
}

// stepFormation reverses and drops the patroller formation once any member
// reaches a side of the arena while moving toward it.
func (c *Controller) stepFormation() {
	arena := c.desc.Arena()
	hit := false
	drop := 0.0
	c.world.Each(VariantOpponent, func(e *Entity) {
		k := c.desc.Kind(e.Kind)
		if k == nil || k.Policy != PolicyPatroller {
			return
		}
		left, right := atEdge(e, arena)
		if (left && c.formationDir < 0) || (right && c.formationDir > 0) {
			hit = true
			drop = max(drop, k.Drop)
		}
	})
	if !hit {
		return
	}
	c.formationDir = -c.formationDir
	c.world.Each(VariantOpponent, func(e *Entity) {
		if k := c.desc.Kind(e.Kind); k != nil && k.Policy == PolicyPatroller {
			e.Pos.Y += drop
		}
	})
}

// fireOpponent spawns one hostile projectile.
func (c *Controller) fireOpponent(e *Entity, k *KindSpec, p *Entity) {
	f := k.Fire
	vel := core.V(0, f.Speed)
	if f.AtPlayer {
		v, ok := e.Pos.Toward(p.Pos, f.Speed)
		if !ok {
			return
		}
		vel = v
	}
	c.world.Spawn(Entity{
		Variant: VariantProjectile,
		Kind:    k.Name + "-shot",
		Pos:     e.Pos,
		Vel:     vel,
		Shape:   Circle(f.Radius),
		Health:  1,
		Damage:  1,
	})
}

// speedOf returns the kind speed for the current wave and difficulty.
func (c *Controller) speedOf(k *KindSpec) float64 {
	return c.difficulty.Speed(k.SpeedAt(c.run.Wave), c.progress())
}

func (c *Controller) progress() config.Progress {
	return config.Progress{Score: c.run.Score, Tick: c.run.Tick, Wave: c.run.Wave}
}

// randomVelocity returns a velocity of the given magnitude in a random heading.
func randomVelocity(r Rand, speed float64) core.Vec2 {
	return core.FromAngle(angle(r), speed)
}

// spawnKind creates an entity of kind k at pos. It is the SpawnFunc used by
// the director, fixtures and split rules.
func (c *Controller) spawnKind(k *KindSpec, pos core.Vec2) bool {
	e := Entity{
		Variant:   k.Variant,
		Kind:      k.Name,
		Pos:       pos,
		Shape:     k.Shape,
		Health:    k.Health,
		MaxHealth: k.Health,
	}
	switch k.Policy {
	case PolicyBouncer, PolicyDrifter:
		e.Vel = randomVelocity(c.rng, c.speedOf(k))
	case PolicyScroller:
		e.Vel = core.V(-c.speedOf(k), 0)
	}
	if k.Fire != nil {
		e.Timers.Fire = 1 + c.rng.Intn(k.Fire.Every+k.Fire.Jitter)
	}
	if k.Lifetime > 0 {
		e.Expires = true
		e.Timers.Lifetime = k.Lifetime
	}
	_, ok := c.world.Spawn(e)
	return ok
}
