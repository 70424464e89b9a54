package config

import (
	"github.com/vovakirdan/neon-arcade/internal/core"
)

// defaultKeys is used for every action a game config leaves unbound.
var defaultKeys = map[core.Action][]string{
	core.ActionLeft:      {"left", "a"},
	core.ActionRight:     {"right", "d"},
	core.ActionUp:        {"up", "w"},
	core.ActionDown:      {"down", "s"},
	core.ActionPrimary:   {"space"},
	core.ActionSecondary: {"x"},
	core.ActionStart:     {"enter"},
	core.ActionPause:     {"p", "esc"},
	core.ActionQuit:      {"q", "ctrl+c"},
}

// Bindings resolves the keys section into per-action key lists.
// Unknown action names are ignored; unbound actions fall back to defaults.
func (c GameConfig) Bindings() map[core.Action][]string {
	out := make(map[core.Action][]string, len(defaultKeys))
	for name, keys := range c.Keys {
		a, ok := core.ParseAction(name)
		if !ok || len(keys) == 0 {
			continue
		}
		out[a] = append([]string(nil), keys...)
	}
	for a, keys := range defaultKeys {
		if _, ok := out[a]; !ok {
			out[a] = append([]string(nil), keys...)
		}
	}
	return out
}
