package breakout

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
)

// Brick kinds, as named in the breakout config.
const (
	KindSoft  = "brick-soft"
	KindMid   = "brick-mid"
	KindHard  = "brick-hard"
	KindSteel = "steel"
)

// Level is a named brick layout.
type Level struct {
	ID    string
	Name  string
	Lines []string
}

// glyphKinds maps layout characters to brick kinds. '.' and anything not
// listed is empty.
var glyphKinds = map[byte]string{
	'#': KindSoft,
	'M': KindMid,
	'H': KindHard,
	'X': KindSteel,
}

// Fixtures places the layout on the descriptor's brick grid. Every
// referenced kind must exist in the descriptor.
func (l Level) Fixtures(d *engine.Descriptor) ([]engine.Fixture, error) {
	g := d.Wave.Grid
	var out []engine.Fixture
	for row, line := range l.Lines {
		for col := 0; col < len(line); col++ {
			name, ok := glyphKinds[line[col]]
			if !ok {
				continue
			}
			k := d.Kind(name)
			if k == nil {
				return nil, fmt.Errorf("breakout: level %s uses kind %q missing from config", l.ID, name)
			}
			hw, hh := k.Shape.HalfExtents()
			out = append(out, engine.Fixture{
				Kind: name,
				Pos:  core.V(g.Left+float64(col)*g.StepX+hw, g.Top+float64(row)*g.StepY+hh),
			})
		}
	}
	return out, nil
}

// Breakable returns the number of bricks a ball can destroy.
func (l Level) Breakable() int {
	n := 0
	for _, line := range l.Lines {
		for i := 0; i < len(line); i++ {
			if k, ok := glyphKinds[line[i]]; ok && k != KindSteel {
				n++
			}
		}
	}
	return n
}

var builtinLevels = []Level{
	{"pyramid", "Pyramid", []string{
		"....##....",
		"...####...",
		"..######..",
		".########.",
		"##########",
	}},
	{"checker", "Checkerboard", []string{
		"#.#.#.#.#.",
		".#.#.#.#.#",
		"#.#.#.#.#.",
		".#.#.#.#.#",
		"#.#.#.#.#.",
	}},
	{"diamond", "Diamond", []string{
		"....MM....",
		"...M##M...",
		"..M####M..",
		"...M##M...",
		"....MM....",
	}},
	{"fortress", "Fortress", []string{
		"HHHHHHHHHH",
		"H........H",
		"H.######.H",
		"H.######.H",
		"H........H",
		"HHHHHHHHHH",
	}},
	{"castle", "Castle", []string{
		"X.X....X.X",
		"XXX....XXX",
		"..........",
		"MMMMMMMMMM",
		"##########",
		"##########",
	}},
	{"boss", "Final Boss", []string{
		"HHHHHHHHHH",
		"HMMMMMMMMH",
		"HM######MH",
		"HM######MH",
		"HMMMMMMMMH",
		"HHHHHHHHHH",
	}},
}

// LevelByID returns a built-in level.
func LevelByID(id string) (Level, bool) {
	for _, l := range builtinLevels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// LevelIDs returns the built-in level IDs, sorted.
func LevelIDs() []string {
	ids := make([]string, 0, len(builtinLevels))
	for _, l := range builtinLevels {
		ids = append(ids, l.ID)
	}
	sort.Strings(ids)
	return ids
}
