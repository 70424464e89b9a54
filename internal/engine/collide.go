package engine

import (
	"github.com/vovakirdan/neon-arcade/internal/core"
)

// resolveCollisions runs the collision passes in their fixed order:
// projectile-vs-opponent, projectile-vs-player, player-vs-opponent,
// player-vs-pickup, player-vs-hazard. Damage and scoring are applied as
// each pass finds contacts; removals are deferred to the end of the tick.
func (c *Controller) resolveCollisions(p *Entity) {
	c.projectilesVsTargets()
	c.projectilesVsPlayer(p)
	c.playerVsOpponents(p)
	c.playerVsPickups(p)
	c.playerVsHazards(p)
}

// projectilesVsTargets lets each friendly projectile hit at most one target.
func (c *Controller) projectilesVsTargets() {
	c.world.Each(VariantProjectile, func(b *Entity) {
		if !b.Friendly || !b.Alive() {
			return
		}
		var hit *Entity
		c.world.All(func(t *Entity) {
			if hit != nil || (t.Variant != VariantOpponent && t.Variant != VariantObstacle) {
				return
			}
			if b.Overlaps(t) {
				hit = t
			}
		})
		if hit == nil {
			return
		}
		if b.Persistent {
			pushOut(b, hit.Box(), true)
		} else {
			c.world.Kill(b)
		}
		if hit.Variant == VariantOpponent {
			c.damage(hit, b.Damage)
		}
	})
}

// projectilesVsPlayer handles hostile shots and paddle rebounds.
func (c *Controller) projectilesVsPlayer(p *Entity) {
	sp := c.desc.Player
	c.world.Each(VariantProjectile, func(b *Entity) {
		if !b.Alive() || !b.Overlaps(p) {
			return
		}
		if b.Friendly {
			if b.Persistent && sp.Deflect && b.Vel.Y > 0 {
				c.deflect(b, p)
			}
			return
		}
		if p.Timers.Invulnerable > 0 {
			return
		}
		c.world.Kill(b)
		c.hurtPlayer(p, b.Damage)
	})
}

// playerVsOpponents applies melee contact damage from the first touching
// opponent.
func (c *Controller) playerVsOpponents(p *Entity) {
	if p.Timers.Invulnerable > 0 {
		return
	}
	var hit *Entity
	c.world.Each(VariantOpponent, func(e *Entity) {
		if hit == nil && e.Overlaps(p) {
			hit = e
		}
	})
	if hit == nil {
		return
	}
	if k := c.desc.Kind(hit.Kind); k != nil {
		c.hurtPlayer(p, k.ContactDamage)
	}
}

// playerVsPickups consumes every touched pickup.
func (c *Controller) playerVsPickups(p *Entity) {
	c.world.Each(VariantPickup, func(e *Entity) {
		if !e.Overlaps(p) {
			return
		}
		c.world.Kill(e)
		k := c.desc.Kind(e.Kind)
		if k == nil {
			return
		}
		p.Health = min(p.MaxHealth, p.Health+k.Heal)
		c.run.Score += k.Reward
	})
}

// playerVsHazards applies damaging obstacles and the escape rule.
func (c *Controller) playerVsHazards(p *Entity) {
	c.world.Each(VariantObstacle, func(o *Entity) {
		if k := c.desc.Kind(o.Kind); k != nil && k.ContactDamage > 0 && o.Overlaps(p) {
			c.hurtPlayer(p, k.ContactDamage)
		}
	})

	line := c.desc.Rules.EscapeLine
	c.world.Each(VariantOpponent, func(e *Entity) {
		k := c.desc.Kind(e.Kind)
		if k == nil || k.EscapeDamage == 0 || e.Box().MaxY < line {
			return
		}
		c.world.Kill(e)
		c.damagePlayer(p, k.EscapeDamage)
	})

	if dmg := c.desc.Player.Projectile.EscapeDamage; dmg != 0 {
		c.world.Each(VariantProjectile, func(b *Entity) {
			if b.Friendly && b.Persistent && b.Box().MinY >= line {
				c.world.Kill(b)
				c.damagePlayer(p, dmg)
			}
		})
	}
}

// damage lowers an opponent's health and destroys it at zero.
func (c *Controller) damage(e *Entity, dmg int) {
	e.Health -= max(dmg, 1)
	if e.Health <= 0 {
		e.Health = 0
		c.destroy(e)
	}
}

// destroy removes a killed opponent and applies its consequences: reward,
// particle burst, split children and pickup drops.
func (c *Controller) destroy(e *Entity) {
	c.world.Kill(e)
	k := c.desc.Kind(e.Kind)
	if k == nil {
		return
	}
	c.run.Score += k.Reward
	c.burst(e.Pos, k.Name)

	if child := c.desc.Kind(k.SplitInto); child != nil {
		for range k.SplitCount {
			if !c.spawnKind(child, e.Pos) {
				break
			}
		}
	}

	w := c.desc.Wave
	if w.PickupChance > 0 && c.rng.Float64() < w.PickupChance {
		if pk := c.desc.Kind(w.PickupKind); pk != nil {
			c.spawnKind(pk, e.Pos)
		}
	}
}

// burst spawns short-lived particles tagged with the source kind, bounded by
// Rules.MaxParticles.
func (c *Controller) burst(pos core.Vec2, kind string) {
	r := c.desc.Rules
	if r.ParticleBurst <= 0 || r.ParticleTTL <= 0 {
		return
	}
	room := r.ParticleBurst
	if r.MaxParticles > 0 {
		room = min(room, r.MaxParticles-c.world.Count(VariantParticle))
	}
	for range room {
		_, ok := c.world.Spawn(Entity{
			Variant: VariantParticle,
			Kind:    kind,
			Pos:     pos,
			Vel:     randomVelocity(c.rng, between(c.rng, 0.5, 2)),
			Expires: true,
			Timers:  Timers{Lifetime: r.ParticleTTL},
		})
		if !ok {
			return
		}
	}
}
