package engine

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is a primitive copy of a run, stable across processes.
type Snapshot struct {
	Game     string
	Tick     int
	Phase    int
	Score    int
	Wave     int
	Distance float64
	Health   int
	Entities []EntitySnapshot
}

// EntitySnapshot is one entity inside a Snapshot.
type EntitySnapshot struct {
	ID      uint32
	Variant uint8
	Kind    string
	X, Y    float64
	VX, VY  float64
	Health  int
	Passed  bool
}

// Snapshot captures the run state and every live entity in insertion order.
// Particles are cosmetic and left out.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Game:     c.desc.ID,
		Tick:     c.run.Tick,
		Phase:    int(c.run.Phase),
		Score:    c.run.Score,
		Wave:     c.run.Wave,
		Distance: c.run.Distance,
	}
	if p := c.Player(); p != nil {
		s.Health = p.Health
	}
	c.world.All(func(e *Entity) {
		if e.Variant == VariantParticle {
			return
		}
		s.Entities = append(s.Entities, EntitySnapshot{
			ID:      uint32(e.ID),
			Variant: uint8(e.Variant),
			Kind:    e.Kind,
			X:       e.Pos.X,
			Y:       e.Pos.Y,
			VX:      e.Vel.X,
			VY:      e.Vel.Y,
			Health:  e.Health,
			Passed:  e.Passed,
		})
	})
	return s
}

// Hash returns an xxhash64 fingerprint of the snapshot.
func (s Snapshot) Hash() uint64 {
	h := xxhash.New()
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	putString := func(v string) {
		putInt(len(v))
		h.WriteString(v)
	}

	putString(s.Game)
	putInt(s.Tick)
	putInt(s.Phase)
	putInt(s.Score)
	putInt(s.Wave)
	putFloat(s.Distance)
	putInt(s.Health)
	putInt(len(s.Entities))
	for _, e := range s.Entities {
		putInt(int(e.ID))
		putInt(int(e.Variant))
		putString(e.Kind)
		putFloat(e.X)
		putFloat(e.Y)
		putFloat(e.VX)
		putFloat(e.VY)
		putInt(e.Health)
		if e.Passed {
			putInt(1)
		} else {
			putInt(0)
		}
	}
	return h.Sum64()
}
