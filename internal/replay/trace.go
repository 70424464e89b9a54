// Package replay records per-tick input traces and re-runs them to prove
// that a game is deterministic for a given seed.
package replay

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// ErrCorrupt is returned when an encoded trace cannot be decoded.
var ErrCorrupt = errors.New("replay: corrupt trace")

// traceVersion is the first byte of every encoded trace.
const traceVersion byte = 1

const flagAiming byte = 1

// Trace is everything needed to re-run a session: the game, how it was
// created, the seed and one input frame per tick.
type Trace struct {
	Game       string
	ConfigPath string
	Preset     string
	Level      string
	Seed       int64
	TickRate   int
	Frames     []core.InputFrame
}

// Options returns the registry options the game was created with.
func (t Trace) Options() registry.Options {
	return registry.Options{ConfigPath: t.ConfigPath, Preset: t.Preset, Level: t.Level}
}

// Encode packs the frames into a compact binary form. Runs of identical
// frames are stored once with a repeat count.
func Encode(frames []core.InputFrame) []byte {
	var buf bytes.Buffer
	buf.WriteByte(traceVersion)
	var tmp [binary.MaxVarintLen64]byte
	putUvarint := func(v uint64) {
		n := binary.PutUvarint(tmp[:], v)
		buf.Write(tmp[:n])
	}

	for i := 0; i < len(frames); {
		f := frames[i]
		run := 1
		for i+run < len(frames) && frames[i+run] == f {
			run++
		}
		i += run

		putUvarint(uint64(run))
		putUvarint(uint64(f.Held))
		putUvarint(uint64(f.Pressed))
		if !f.Aiming {
			buf.WriteByte(0)
			continue
		}
		buf.WriteByte(flagAiming)
		binary.Write(&buf, binary.LittleEndian, math.Float64bits(f.Pointer.X))
		binary.Write(&buf, binary.LittleEndian, math.Float64bits(f.Pointer.Y))
	}
	return buf.Bytes()
}

// Decode unpacks frames produced by Encode.
func Decode(data []byte) ([]core.InputFrame, error) {
	r := bytes.NewReader(data)
	v, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: empty", ErrCorrupt)
	}
	if v != traceVersion {
		return nil, fmt.Errorf("%w: version %d", ErrCorrupt, v)
	}

	var frames []core.InputFrame
	for r.Len() > 0 {
		run, err := binary.ReadUvarint(r)
		if err != nil || run == 0 {
			return nil, fmt.Errorf("%w: bad run length", ErrCorrupt)
		}
		held, err1 := binary.ReadUvarint(r)
		pressed, err2 := binary.ReadUvarint(r)
		flags, err3 := r.ReadByte()
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}

		f := core.InputFrame{Held: core.ActionSet(held), Pressed: core.ActionSet(pressed)}
		if flags&flagAiming != 0 {
			var x, y uint64
			if err := errors.Join(
				binary.Read(r, binary.LittleEndian, &x),
				binary.Read(r, binary.LittleEndian, &y),
			); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
			}
			f.Aiming = true
			f.Pointer = core.V(math.Float64frombits(x), math.Float64frombits(y))
		}
		if uint64(len(frames))+run > maxFrames {
			return nil, fmt.Errorf("%w: more than %d frames", ErrCorrupt, maxFrames)
		}
		for range run {
			frames = append(frames, f)
		}
	}
	return frames, nil
}

// maxFrames bounds a decoded trace: one hour at 240 ticks per second.
const maxFrames = 240 * 60 * 60

// traceDoc is the YAML form of a trace.
type traceDoc struct {
	Game       string     `yaml:"game"`
	ConfigPath string     `yaml:"config,omitempty"`
	Preset     string     `yaml:"preset,omitempty"`
	Level      string     `yaml:"level,omitempty"`
	Seed       int64      `yaml:"seed"`
	TickRate   int        `yaml:"tick_rate"`
	Frames     []frameDoc `yaml:"frames"`
}

type frameDoc struct {
	Repeat  int       `yaml:"repeat,omitempty"`
	Held    []string  `yaml:"held,flow,omitempty"`
	Pressed []string  `yaml:"pressed,flow,omitempty"`
	Pointer []float64 `yaml:"pointer,flow,omitempty"`
}

// WriteYAML exports t in a human-readable form.
func WriteYAML(w io.Writer, t Trace) error {
	doc := traceDoc{
		Game:       t.Game,
		ConfigPath: t.ConfigPath,
		Preset:     t.Preset,
		Level:      t.Level,
		Seed:       t.Seed,
		TickRate:   t.TickRate,
		Frames:     []frameDoc{},
	}
	for i := 0; i < len(t.Frames); {
		f := t.Frames[i]
		run := 1
		for i+run < len(t.Frames) && t.Frames[i+run] == f {
			run++
		}
		i += run

		fd := frameDoc{Held: actionNames(f.Held), Pressed: actionNames(f.Pressed)}
		if run > 1 {
			fd.Repeat = run
		}
		if f.Aiming {
			fd.Pointer = []float64{f.Pointer.X, f.Pointer.Y}
		}
		doc.Frames = append(doc.Frames, fd)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("replay: encode yaml: %w", err)
	}
	return enc.Close()
}

// ReadYAML imports a trace written by WriteYAML.
func ReadYAML(r io.Reader) (Trace, error) {
	var doc traceDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Trace{}, fmt.Errorf("replay: decode yaml: %w", err)
	}
	t := Trace{
		Game:       doc.Game,
		ConfigPath: doc.ConfigPath,
		Preset:     doc.Preset,
		Level:      doc.Level,
		Seed:       doc.Seed,
		TickRate:   doc.TickRate,
	}
	for i, fd := range doc.Frames {
		held, err := parseActions(fd.Held)
		if err != nil {
			return Trace{}, fmt.Errorf("replay: frame %d: %w", i, err)
		}
		pressed, err := parseActions(fd.Pressed)
		if err != nil {
			return Trace{}, fmt.Errorf("replay: frame %d: %w", i, err)
		}
		f := core.InputFrame{Held: held, Pressed: pressed}
		switch len(fd.Pointer) {
		case 0:
		case 2:
			f.Aiming = true
			f.Pointer = core.V(fd.Pointer[0], fd.Pointer[1])
		default:
			return Trace{}, fmt.Errorf("replay: frame %d: pointer needs 2 values", i)
		}
		run := max(fd.Repeat, 1)
		if len(t.Frames)+run > maxFrames {
			return Trace{}, fmt.Errorf("%w: frame %d: more than %d frames", ErrCorrupt, i, maxFrames)
		}
		for range run {
			t.Frames = append(t.Frames, f)
		}
	}
	return t, nil
}

func actionNames(s core.ActionSet) []string {
	var out []string
	for a := core.ActionLeft; a <= core.ActionQuit; a++ {
		if s.Has(a) {
			out = append(out, a.String())
		}
	}
	return out
}

func parseActions(names []string) (core.ActionSet, error) {
	var s core.ActionSet
	for _, n := range names {
		a, ok := core.ParseAction(n)
		if !ok {
			return 0, fmt.Errorf("unknown action %q", n)
		}
		s = s.With(a)
	}
	return s, nil
}
