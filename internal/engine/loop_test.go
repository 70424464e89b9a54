package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

type countingGame struct {
	steps int
}

func (g *countingGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{Ticks: 1}
}

func TestLoopFixedTimestep(t *testing.T) {
	g := &countingGame{}
	l := NewLoop(g, NewSampler(10, 10, 0), 60)
	t0 := time.Unix(0, 0)

	require.Equal(t, 0, l.Advance(t0), "first call anchors the clock")
	require.Equal(t, 3, l.Advance(t0.Add(50*time.Millisecond)))
	require.Equal(t, 3, g.steps)
	require.Less(t, l.Alpha(), 1.0)

	// Repaint rate does not change the tick count over the same wall time.
	g2 := &countingGame{}
	l2 := NewLoop(g2, NewSampler(10, 10, 0), 60)
	l2.Advance(t0)
	for i := 1; i <= 50; i++ {
		l2.Advance(t0.Add(time.Duration(i) * time.Millisecond))
	}
	require.Equal(t, 3, g2.steps)
}

func TestLoopCatchUpBound(t *testing.T) {
	g := &countingGame{}
	l := NewLoop(g, NewSampler(10, 10, 0), 60)
	t0 := time.Unix(0, 0)
	l.Advance(t0)

	require.Equal(t, DefaultMaxCatchUp, l.Advance(t0.Add(10*time.Second)))
	require.Less(t, l.Alpha(), 1.0, "excess time is dropped")

	l.SetMaxCatchUp(2)
	require.Equal(t, 2, l.Advance(t0.Add(10*time.Second+100*time.Millisecond)))
	require.Equal(t, uint64(DefaultMaxCatchUp+2), l.Ticks())
}

func TestLoopStop(t *testing.T) {
	g := &countingGame{}
	l := NewLoop(g, NewSampler(10, 10, 0), 60)
	t0 := time.Unix(0, 0)
	l.Advance(t0)
	l.Stop()
	require.True(t, l.Stopped())
	require.Equal(t, 0, l.Advance(t0.Add(time.Second)))
	require.Zero(t, g.steps)
}

func TestLoopRunHonoursContext(t *testing.T) {
	g := &countingGame{}
	l := NewLoop(g, NewSampler(10, 10, 0), 100)
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	frames := 0
	err := l.Run(ctx, 5*time.Millisecond, func() { frames++ })
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, l.Stopped())
	require.Positive(t, frames)
	require.Positive(t, g.steps)
}

func TestLoopRunStopFromPaint(t *testing.T) {
	l := NewLoop(&countingGame{}, NewSampler(10, 10, 0), 60)
	frames := 0
	err := l.Run(context.Background(), time.Millisecond, func() {
		frames++
		if frames == 3 {
			l.Stop()
		}
	})
	require.NoError(t, err)
	require.Equal(t, 3, frames)
}
