package engine

import (
	"sync"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Sampler buffers asynchronous input and hands it to the simulation once
// per tick. Event handlers only ever write here; the loop only reads through
// Snapshot.
//
// Sources without key-up events (most terminals) report presses only; for
// them a press is treated as held for holdTicks ticks, refreshed by key
// repeat. With holdTicks <= 0 an action stays held until Release.
type Sampler struct {
	mu        sync.Mutex
	holdTicks int
	pressed   core.ActionSet
	hold      [16]int // remaining hold ticks per action, -1 = until Release

	logicalW, logicalH float64
	surface            core.Rect
	mounted            bool
	pointer            core.Vec2
	aiming             bool
}

// NewSampler creates a sampler for a logical surface of w x h units.
func NewSampler(w, h float64, holdTicks int) *Sampler {
	return &Sampler{
		logicalW:  w,
		logicalH:  h,
		holdTicks: holdTicks,
		pointer:   core.V(w/2, h/2),
	}
}

// Press records an edge and starts holding the action.
// ActionNone and out-of-range actions are ignored.
func (s *Sampler) Press(a core.Action) {
	if a == core.ActionNone || int(a) >= len(s.hold) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pressed = s.pressed.With(a)
	if s.holdTicks > 0 {
		s.hold[a] = s.holdTicks
	} else {
		s.hold[a] = -1
	}
}

// Release stops holding an action.
func (s *Sampler) Release(a core.Action) {
	if int(a) >= len(s.hold) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hold[a] = 0
}

// SetSurface records where the logical surface is displayed, in display
// cells. A zero-sized rect unmounts it.
func (s *Sampler) SetSurface(r core.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = r
	s.mounted = r.W > 0 && r.H > 0
}

// MovePointer maps a display position into logical coordinates.
// While unmounted the last known position is kept.
func (s *Sampler) MovePointer(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return
	}
	lx := (float64(x-s.surface.X) + 0.5) * s.logicalW / float64(s.surface.W)
	ly := (float64(y-s.surface.Y) + 0.5) * s.logicalH / float64(s.surface.H)
	s.pointer = core.V(core.ClampF(lx, 0, s.logicalW), core.ClampF(ly, 0, s.logicalH))
	s.aiming = true
}

// Pointer returns the last mapped pointer position.
func (s *Sampler) Pointer() core.Vec2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointer
}

// Snapshot returns the input for one tick. Edges are consumed, so a single
// press is seen by exactly one tick; hold timers count down.
func (s *Sampler) Snapshot() core.InputFrame {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := core.NewInputFrame()
	in.Pressed = s.pressed
	in.Held = s.pressed
	for a := range s.hold {
		if s.hold[a] != 0 {
			in.Held = in.Held.With(core.Action(a))
		}
		if s.hold[a] > 0 {
			s.hold[a]--
		}
	}
	in.Pointer = s.pointer
	in.Aiming = s.aiming
	s.pressed = 0
	return in
}
