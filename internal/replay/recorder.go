package replay

import (
	"sync"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
)

// Recorder wraps an input source and keeps every frame it hands out.
type Recorder struct {
	src engine.InputSource

	mu     sync.Mutex
	frames []core.InputFrame
}

// NewRecorder records the frames read from src.
func NewRecorder(src engine.InputSource) *Recorder {
	return &Recorder{src: src}
}

// Snapshot reads one frame from the wrapped source and records it.
func (r *Recorder) Snapshot() core.InputFrame {
	in := r.src.Snapshot()
	r.mu.Lock()
	r.frames = append(r.frames, in)
	r.mu.Unlock()
	return in
}

// Frames returns a copy of the recorded frames.
func (r *Recorder) Frames() []core.InputFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.InputFrame(nil), r.frames...)
}

// Autopilot is a seeded input source that plays like a restless user:
// it wanders, fires in bursts and restarts after a run ends. The same seed
// always yields the same frames.
type Autopilot struct {
	rng  engine.Rand
	w, h float64

	tick    int
	held    core.ActionSet
	until   int
	pointer core.Vec2
}

var moves = []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown}

// NewAutopilot creates an autopilot for a logical surface of w x h units.
func NewAutopilot(seed int64, w, h float64) *Autopilot {
	return &Autopilot{
		rng:     engine.NewRand(seed),
		w:       w,
		h:       h,
		pointer: core.V(w/2, h/2),
	}
}

// Snapshot returns the next frame.
func (a *Autopilot) Snapshot() core.InputFrame {
	in := core.NewInputFrame()
	if a.tick%90 == 0 {
		in.Press(core.ActionStart)
	}
	if a.tick >= a.until {
		a.held = 0
		for _, m := range moves {
			if a.rng.Intn(3) == 0 {
				a.held = a.held.With(m)
			}
		}
		a.until = a.tick + 10 + a.rng.Intn(30)
		a.pointer = core.V(a.rng.Float64()*a.w, a.rng.Float64()*a.h)
	}
	in.Held |= a.held
	if a.rng.Intn(6) == 0 {
		in.Press(core.ActionPrimary)
	}
	in.Pointer = a.pointer
	in.Aiming = true
	a.tick++
	return in
}
