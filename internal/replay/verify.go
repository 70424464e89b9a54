package replay

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
	"github.com/vovakirdan/neon-arcade/internal/registry"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

// ErrMismatch is returned when a re-run does not reproduce the recorded
// fingerprint.
var ErrMismatch = errors.New("replay: fingerprint mismatch")

// Fingerprinted is a game whose state can be captured for comparison.
// Every engine.Controller qualifies.
type Fingerprinted interface {
	registry.Game
	Descriptor() *engine.Descriptor
	Snapshot() engine.Snapshot
}

// Create builds a fresh game for t and resets it with the trace seed.
func Create(t Trace) (Fingerprinted, error) {
	g, err := registry.Create(t.Game, t.Options())
	if err != nil {
		return nil, err
	}
	fg, ok := g.(Fingerprinted)
	if !ok {
		return nil, fmt.Errorf("replay: game %q cannot be fingerprinted", t.Game)
	}
	cfg := core.DefaultConfig()
	cfg.Seed = t.Seed
	if t.TickRate > 0 {
		cfg.TickRate = t.TickRate
	}
	fg.Reset(cfg)
	return fg, nil
}

// Play re-runs every frame of t on a fresh game and returns the final
// snapshot.
func Play(t Trace) (engine.Snapshot, error) {
	g, err := Create(t)
	if err != nil {
		return engine.Snapshot{}, err
	}
	for _, in := range t.Frames {
		g.Step(in)
	}
	return g.Snapshot(), nil
}

// Record runs t's game headless for ticks frames of input read from src and
// returns the trace with the frames filled in, plus the final snapshot.
// A nil src is replaced by an Autopilot seeded with t.Seed.
func Record(t Trace, src engine.InputSource, ticks int) (Trace, engine.Snapshot, error) {
	g, err := Create(t)
	if err != nil {
		return Trace{}, engine.Snapshot{}, err
	}
	if src == nil {
		d := g.Descriptor()
		src = NewAutopilot(t.Seed, d.Width, d.Height)
	}
	rec := NewRecorder(src)
	for range ticks {
		g.Step(rec.Snapshot())
	}
	t.Frames = rec.Frames()
	return t, g.Snapshot(), nil
}

// ToReplay converts a finished trace into a storable record.
func ToReplay(t Trace, snap engine.Snapshot) storage.Replay {
	return storage.Replay{
		GameID:      t.Game,
		ConfigPath:  t.ConfigPath,
		Preset:      t.Preset,
		Level:       t.Level,
		Seed:        t.Seed,
		TickRate:    t.TickRate,
		Ticks:       len(t.Frames),
		Trace:       Encode(t.Frames),
		Fingerprint: snap.Hash(),
		Score:       snap.Score,
		Phase:       core.Phase(snap.Phase).String(),
	}
}

// FromReplay decodes a stored record back into a trace.
func FromReplay(r storage.Replay) (Trace, error) {
	frames, err := Decode(r.Trace)
	if err != nil {
		return Trace{}, fmt.Errorf("replay %s: %w", r.ID, err)
	}
	return Trace{
		Game:       r.GameID,
		ConfigPath: r.ConfigPath,
		Preset:     r.Preset,
		Level:      r.Level,
		Seed:       r.Seed,
		TickRate:   r.TickRate,
		Frames:     frames,
	}, nil
}

// Outcome is the result of verifying one replay.
type Outcome struct {
	ID   string
	Game string
	Want uint64
	Got  uint64
	Err  error
}

// OK reports whether the replay reproduced its fingerprint.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Verify re-runs a stored replay and compares fingerprints.
func Verify(r storage.Replay) Outcome {
	o := Outcome{ID: r.ID, Game: r.GameID, Want: r.Fingerprint}
	t, err := FromReplay(r)
	if err != nil {
		o.Err = err
		return o
	}
	snap, err := Play(t)
	if err != nil {
		o.Err = err
		return o
	}
	o.Got = snap.Hash()
	if o.Got != o.Want {
		o.Err = fmt.Errorf("%w: %s got %016x want %016x", ErrMismatch, r.ID, o.Got, o.Want)
	}
	return o
}

// VerifyAll verifies replays in parallel, at most workers at a time
// (GOMAXPROCS when workers <= 0). Outcomes are returned in input order. The
// returned error is only set when ctx ends before every replay ran;
// per-replay failures are reported in the outcomes.
func VerifyAll(ctx context.Context, replays []storage.Replay, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Outcome, len(replays))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, r := range replays {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Verify(r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// Failed counts outcomes that did not verify.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}
