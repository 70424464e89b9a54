package engine

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// SpawnFunc creates one entity of kind k at pos. It reports false when the
// world refused the entity.
type SpawnFunc func(k *KindSpec, pos core.Vec2) bool

// Director decides what a wave contains, how many and where.
// It never touches the world itself; the caller supplies a SpawnFunc.
type Director struct {
	desc   *Descriptor
	rng    Rand
	logger *log.Logger
}

// NewDirector creates a director. A nil logger discards output.
func NewDirector(desc *Descriptor, rng Rand, logger *log.Logger) *Director {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Director{desc: desc, rng: rng, logger: logger}
}

// Count returns the size of a wave: base + wave*increment, or the grid size
// for formation layouts.
func (d *Director) Count(wave int) int {
	w := d.desc.Wave
	if w.Layout == LayoutGrid {
		return w.Grid.Rows * w.Grid.Cols
	}
	return max(w.Base+wave*w.Increment, 0)
}

// Pick chooses a kind from the wave mix. Entries are tried in order; an
// entry is only rolled once its wave is reached.
func (d *Director) Pick(wave int) string {
	for _, m := range d.desc.Wave.Mix {
		if wave < m.FromWave {
			continue
		}
		if d.rng.Float64() < m.Chance {
			return m.Kind
		}
	}
	return d.desc.Wave.DefaultKind
}

// Populate spawns wave. Nothing is spawned unless phase is Running.
// It returns the number of entities actually created.
func (d *Director) Populate(phase core.Phase, wave int, avoid core.Vec2, spawn SpawnFunc) int {
	if phase != core.PhaseRunning {
		return 0
	}
	if d.desc.Wave.Layout == LayoutGrid {
		return d.populateGrid(spawn)
	}

	n := d.Count(wave)
	spawned := 0
	for i := range n {
		k := d.desc.Kind(d.Pick(wave))
		if k == nil {
			continue
		}
		if !spawn(k, d.place(i, n, k, avoid)) {
			d.logger.Debug("world full, wave truncated", "wave", wave, "spawned", spawned, "want", n)
			break
		}
		spawned++
	}
	return spawned
}

func (d *Director) populateGrid(spawn SpawnFunc) int {
	g := d.desc.Wave.Grid
	if len(g.RowKinds) == 0 {
		return 0
	}
	spawned := 0
	for r := range g.Rows {
		k := d.desc.Kind(g.RowKinds[r%len(g.RowKinds)])
		if k == nil {
			continue
		}
		hw, hh := k.Shape.HalfExtents()
		for c := range g.Cols {
			pos := core.V(g.Left+float64(c)*g.StepX+hw, g.Top+float64(r)*g.StepY+hh)
			if !spawn(k, pos) {
				return spawned
			}
			spawned++
		}
	}
	return spawned
}

// place runs the minimum-distance retry loop. When every attempt lands too
// close to avoid, the farthest candidate is used.
func (d *Director) place(i, n int, k *KindSpec, avoid core.Vec2) core.Vec2 {
	w := d.desc.Wave
	minSq := w.MinSpawnDistance * w.MinSpawnDistance
	var best core.Vec2
	bestSq := -1.0
	for attempt := 0; attempt <= w.MaxRetries; attempt++ {
		p := d.candidate(i, n, attempt, k)
		distSq := p.DistSq(avoid)
		if distSq >= minSq {
			return p
		}
		if distSq > bestSq {
			best, bestSq = p, distSq
		}
	}
	d.logger.Debug("spawn retries exhausted, using farthest candidate",
		"kind", k.Name, "retries", w.MaxRetries, "distance", math.Sqrt(bestSq))
	return best
}

// candidate proposes a position for the i-th of n entities.
func (d *Director) candidate(i, n, attempt int, k *KindSpec) core.Vec2 {
	hw, hh := k.Shape.HalfExtents()
	area := d.desc.Arena()
	area.MinX += hw
	area.MaxX -= hw
	area.MinY += hh
	area.MaxY -= hh

	var p core.Vec2
	switch d.desc.Wave.Layout {
	case LayoutRing:
		a := 2 * math.Pi * float64(i) / float64(max(n, 1))
		if attempt > 0 {
			a += between(d.rng, -math.Pi/float64(max(n, 1)), math.Pi/float64(max(n, 1)))
		}
		dist := between(d.rng, d.desc.Wave.RingMin, d.desc.Wave.RingMax)
		p = d.desc.Surface().Center().Add(core.FromAngle(a, dist))
	default:
		p = core.V(between(d.rng, area.MinX, area.MaxX), between(d.rng, area.MinY, area.MaxY))
	}
	p.X = core.ClampF(p.X, math.Min(area.MinX, area.MaxX), math.Max(area.MinX, area.MaxX))
	p.Y = core.ClampF(p.Y, math.Min(area.MinY, area.MaxY), math.Max(area.MinY, area.MaxY))
	return p
}

// Stream spawns the next piece of a scrolling stream just past the right
// edge. With a gap configured it spawns a pair, one piece above the gap and
// one below it. It returns the number of entities created.
func (d *Director) Stream(phase core.Phase, wave int, spawn SpawnFunc) int {
	st := d.desc.Wave.Stream
	if phase != core.PhaseRunning || !st.Enabled() {
		return 0
	}
	k := d.desc.Kind(d.Pick(wave))
	if k == nil {
		return 0
	}
	hw, hh := k.Shape.HalfExtents()
	x := st.X
	if x == 0 {
		x = d.desc.Width + hw
	}
	y := k.SpawnY
	if y == 0 {
		y = between(d.rng, st.MinY, st.MaxY)
	}
	if st.Gap <= 0 {
		if !spawn(k, core.V(x, y)) {
			return 0
		}
		return 1
	}

	low := k
	if st.PairKind != "" {
		low = d.desc.Kind(st.PairKind)
	}
	_, lh := low.Shape.HalfExtents()
	spawned := 0
	if spawn(k, core.V(x, y-st.Gap/2-hh)) {
		spawned++
	}
	if spawn(low, core.V(x, y+st.Gap/2+lh)) {
		spawned++
	}
	if spawned < 2 {
		d.logger.Debug("world full, stream pair truncated", "wave", wave, "spawned", spawned)
	}
	return spawned
}
