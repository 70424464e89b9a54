package engine

// World is the entity arena of one session.
//
// Entities live in an insertion-ordered slice with an id->index map on the
// side. Removal is two-phase: Kill marks, Compact drops every marked entity
// once at the end of a tick, preserving order. The insertion order doubles as
// the deterministic iteration order of the step and the paint order within a
// render layer.
type World struct {
	ents   []*Entity
	index  map[Handle]int
	nextID Handle
	max    int
	live   int
	marked int
}

// NewWorld creates an empty world holding at most max live entities.
// A non-positive max disables the cap.
func NewWorld(max int) *World {
	return &World{
		ents:  make([]*Entity, 0, 64),
		index: make(map[Handle]int, 64),
		max:   max,
	}
}

// Reset removes every entity and restarts the ID sequence.
func (w *World) Reset() {
	for i := range w.ents {
		w.ents[i] = nil
	}
	w.ents = w.ents[:0]
	clear(w.index)
	w.nextID = 0
	w.live = 0
	w.marked = 0
}

// Spawn inserts a copy of e and returns the stored entity.
// It refuses (nil, false) once the live count has reached the cap.
func (w *World) Spawn(e Entity) (*Entity, bool) {
	if w.max > 0 && w.live >= w.max {
		return nil, false
	}
	w.nextID++
	e.ID = w.nextID
	e.dead = false
	stored := &e
	w.index[e.ID] = len(w.ents)
	w.ents = append(w.ents, stored)
	w.live++
	return stored, true
}

// Get returns the live entity with the given handle, or nil.
func (w *World) Get(id Handle) *Entity {
	i, ok := w.index[id]
	if !ok {
		return nil
	}
	e := w.ents[i]
	if e.dead {
		return nil
	}
	return e
}

// Kill marks an entity for removal at the next Compact.
// Killing a dead or foreign entity is a no-op.
func (w *World) Kill(e *Entity) {
	if e == nil || e.dead {
		return
	}
	if i, ok := w.index[e.ID]; !ok || w.ents[i] != e {
		return
	}
	e.dead = true
	w.live--
	w.marked++
}

// Compact removes marked entities, keeping insertion order.
func (w *World) Compact() {
	if w.marked == 0 {
		return
	}
	n := 0
	for _, e := range w.ents {
		if e.dead {
			delete(w.index, e.ID)
			continue
		}
		w.ents[n] = e
		w.index[e.ID] = n
		n++
	}
	for i := n; i < len(w.ents); i++ {
		w.ents[i] = nil
	}
	w.ents = w.ents[:n]
	w.marked = 0
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.live
}

// Cap returns the live entity cap, 0 when uncapped.
func (w *World) Cap() int {
	return w.max
}

// Count returns the number of live entities of a variant.
func (w *World) Count(v Variant) int {
	n := 0
	for _, e := range w.ents {
		if !e.dead && e.Variant == v {
			n++
		}
	}
	return n
}

// Each calls fn for every live entity of variant v in insertion order.
// Entities spawned during the walk are not visited.
func (w *World) Each(v Variant, fn func(*Entity)) {
	end := len(w.ents)
	for i := 0; i < end; i++ {
		e := w.ents[i]
		if !e.dead && e.Variant == v {
			fn(e)
		}
	}
}

// All calls fn for every live entity in insertion order.
// Entities spawned during the walk are not visited.
func (w *World) All(fn func(*Entity)) {
	end := len(w.ents)
	for i := 0; i < end; i++ {
		if e := w.ents[i]; !e.dead {
			fn(e)
		}
	}
}

// First returns the first live entity of a variant, or nil.
func (w *World) First(v Variant) *Entity {
	for _, e := range w.ents {
		if !e.dead && e.Variant == v {
			return e
		}
	}
	return nil
}
