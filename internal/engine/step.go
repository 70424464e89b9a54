package engine

import (
	"github.com/vovakirdan/neon-arcade/internal/core"
)

// simulate advances the run by exactly one tick. The order of the phases is
// fixed so that identical seeds and input traces give identical runs.
func (c *Controller) simulate(in core.InputFrame) {
	if c.run.Phase != core.PhaseRunning {
		return
	}
	p := c.Player()
	if p == nil {
		return
	}

	c.applyInput(p, in)
	c.runPolicies(p)
	c.integrate(p)
	c.resolveCollisions(p)
	c.evaluate(p)
	c.advanceTimers()
	c.world.Compact()
}

// integrate moves every entity by its velocity, separates movers from
// obstacles and then enforces bounds. Bounds run last so that no push can
// leave an entity outside its area.
func (c *Controller) integrate(p *Entity) {
	c.world.All(func(e *Entity) {
		if !e.Vel.IsZero() {
			e.Pos = e.Pos.Add(e.Vel)
		}
		if !e.Pos.Finite() || !e.Vel.Finite() {
			c.recoverNonFinite(e)
		}
	})

	// Obstacles block opponents and the player.
	c.world.Each(VariantObstacle, func(o *Entity) {
		box := o.Box()
		c.world.Each(VariantOpponent, func(e *Entity) {
			if !e.Overlaps(o) {
				return
			}
			k := c.desc.Kind(e.Kind)
			reflect := k != nil && (k.Policy == PolicyBouncer || k.Policy == PolicyPatroller || k.Policy == PolicyDrifter)
			pushOut(e, box, reflect)
		})
		if k := c.desc.Kind(o.Kind); k != nil && k.ContactDamage == 0 && p.Overlaps(o) {
			pushOut(p, box, false)
		}
	})

	touched := false
	pinnable := c.desc.Bounds[VariantPlayer] != BoundsWrap
	c.world.All(func(e *Entity) {
		before := e.Pos
		if c.applyBounds(e) && e.ID == p.ID && pinnable && e.Pos != before {
			touched = true
		}
	})
	if c.land(p) {
		touched = true
	}
	if touched && c.desc.Player.LethalBounds {
		c.logger.Debug("player hit the arena edge", "game", c.desc.ID, "tick", c.run.Tick)
		c.damagePlayer(p, -1)
	}
}

// recoverNonFinite handles an entity whose state became NaN or infinite.
// The player is put back on its start position, anything else is dropped.
func (c *Controller) recoverNonFinite(e *Entity) {
	c.logger.Debug("non-finite entity state", "id", e.ID, "kind", e.Kind)
	if e.Variant == VariantPlayer {
		e.Pos = c.desc.Player.Start
		e.Vel = core.Vec2{}
		return
	}
	c.world.Kill(e)
}

// evaluate checks wave clear and the terminal conditions.
func (c *Controller) evaluate(p *Entity) {
	if c.run.Phase != core.PhaseRunning {
		return
	}
	c.advanceDistance()
	c.scorePassed(p)
	stream := c.desc.Wave.Stream
	if !stream.Enabled() && c.world.Count(VariantOpponent) == 0 {
		c.clearWave(p)
		if c.run.Phase != core.PhaseRunning {
			return
		}
	}

	r := c.desc.Rules
	if r.WinScore > 0 && c.run.Score >= r.WinScore {
		c.finish(core.PhaseWon)
		return
	}
	if r.WinDistance > 0 && c.run.Distance >= r.WinDistance {
		c.finish(core.PhaseWon)
		return
	}
	if h := c.desc.Hooks; h.Lost != nil && h.Lost(View{c}) {
		c.finish(core.PhaseOver)
		return
	}
	if h := c.desc.Hooks; h.Won != nil && h.Won(View{c}) {
		c.finish(core.PhaseWon)
		return
	}

	if stream.Enabled() {
		c.stepStream()
	}
	c.serve(p)
	c.run.Best = max(c.run.Best, c.run.Score)
}

// advanceDistance scrolls the world and awards the distance score.
func (c *Controller) advanceDistance() {
	r := c.desc.Rules
	if r.Scroll <= 0 {
		return
	}
	before := int(c.run.Distance * r.DistanceScore)
	c.run.Distance += c.difficulty.Speed(r.Scroll, c.progress())
	c.run.Score += int(c.run.Distance*r.DistanceScore) - before
}

// scorePassed rewards every scrolling opponent once its trailing edge is
// behind the player.
func (c *Controller) scorePassed(p *Entity) {
	c.world.Each(VariantOpponent, func(e *Entity) {
		if e.Passed || e.Box().MaxX >= p.Pos.X {
			return
		}
		k := c.desc.Kind(e.Kind)
		if k == nil || k.PassReward == 0 {
			return
		}
		e.Passed = true
		c.run.Score += k.PassReward
	})
}

// stepStream advances the timed wave counter and spawns the next piece
// of the stream when its countdown runs out.
func (c *Controller) stepStream() {
	st := c.desc.Wave.Stream
	if st.WaveTicks > 0 {
		c.run.Wave = 1 + c.run.Tick/st.WaveTicks
	}
	if c.streamIn > 0 {
		c.streamIn--
	}
	if c.streamIn > 0 {
		return
	}
	n := c.director.Stream(c.run.Phase, c.run.Wave, c.spawnKind)
	c.streamIn = jitter(c.rng, c.difficulty.FireInterval(st.Every, c.progress()), st.Jitter)
	c.logger.Debug("stream spawn", "game", c.desc.ID, "tick", c.run.Tick, "spawned", n, "next", c.streamIn)
}

// clearWave advances to the next wave, or ends the run on the final one.
func (c *Controller) clearWave(p *Entity) {
	r := c.desc.Rules
	if r.WinWave > 0 && c.run.Wave >= r.WinWave {
		c.finish(core.PhaseWon)
		return
	}

	c.run.Wave++
	if r.HealOnClear > 0 {
		p.Health = min(p.MaxHealth, p.Health+r.HealOnClear)
	}
	if c.desc.Wave.ClearProjectiles {
		c.world.Each(VariantProjectile, func(b *Entity) {
			if !b.Persistent {
				c.world.Kill(b)
			}
		})
	}
	n := c.director.Populate(c.run.Phase, c.run.Wave, p.Pos, c.spawnKind)
	c.logger.Debug("wave cleared", "game", c.desc.ID, "wave", c.run.Wave, "spawned", n)
}

// advanceTimers decrements every entity timer once and expires lifetimes.
func (c *Controller) advanceTimers() {
	c.world.All(func(e *Entity) {
		e.Timers.tick()
		if e.Expires && e.Timers.Lifetime == 0 {
			c.world.Kill(e)
		}
	})
	c.run.Tick++
}
