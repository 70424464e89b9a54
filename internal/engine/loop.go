package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

const (
	// MaxFrameTime caps the real time credited to a single frame.
	MaxFrameTime = 250 * time.Millisecond
	// DefaultMaxCatchUp bounds the ticks run for one frame.
	DefaultMaxCatchUp = 8
)

// Stepper is what the loop advances.
type Stepper interface {
	Step(in core.InputFrame) core.StepResult
}

// InputSource yields one input frame per tick.
type InputSource interface {
	Snapshot() core.InputFrame
}

// Loop is a fixed-timestep accumulator. Real elapsed time is credited on
// every Advance and spent in whole ticks of 1/tickRate, so gameplay speed
// does not depend on how often the surface repaints.
type Loop struct {
	game       Stepper
	input      InputSource
	dt         time.Duration
	maxCatchUp int

	acc     time.Duration
	last    time.Time
	started bool
	stopped bool
	ticks   uint64
}

// NewLoop creates a loop running game at tickRate ticks per second.
func NewLoop(game Stepper, input InputSource, tickRate int) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Loop{
		game:       game,
		input:      input,
		dt:         time.Second / time.Duration(tickRate),
		maxCatchUp: DefaultMaxCatchUp,
	}
}

// SetMaxCatchUp changes the per-frame tick bound.
func (l *Loop) SetMaxCatchUp(n int) {
	if n > 0 {
		l.maxCatchUp = n
	}
}

// TickDuration returns the fixed timestep.
func (l *Loop) TickDuration() time.Duration {
	return l.dt
}

// Advance credits the time elapsed since the previous call and runs as many
// whole ticks as fit. The first call only anchors the clock. Time beyond
// MaxFrameTime or beyond maxCatchUp ticks is dropped rather than owed.
func (l *Loop) Advance(now time.Time) int {
	if l.stopped {
		return 0
	}
	if !l.started {
		l.started = true
		l.last = now
		return 0
	}

	frame := now.Sub(l.last)
	l.last = now
	if frame < 0 {
		frame = 0
	}
	if frame > MaxFrameTime {
		frame = MaxFrameTime
	}
	l.acc += frame

	n := 0
	for l.acc >= l.dt && n < l.maxCatchUp {
		l.game.Step(l.input.Snapshot())
		l.acc -= l.dt
		l.ticks++
		n++
	}
	if l.acc >= l.dt {
		l.acc %= l.dt
	}
	return n
}

// Alpha is the fraction of a tick left in the accumulator.
func (l *Loop) Alpha() float64 {
	return float64(l.acc) / float64(l.dt)
}

// Ticks returns the total number of ticks run.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Stop prevents any further ticks. It cannot be undone.
func (l *Loop) Stop() {
	l.stopped = true
}

// Stopped reports whether Stop was called.
func (l *Loop) Stopped() bool {
	return l.stopped
}

// Run drives the loop from a ticker firing every interval, calling paint once
// per frame, until ctx is done or Stop is called from paint.
func (l *Loop) Run(ctx context.Context, interval time.Duration, paint func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.Advance(time.Now())
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case now := <-ticker.C:
			if l.stopped {
				return nil
			}
			l.Advance(now)
			if paint != nil {
				paint()
			}
		}
	}
}
