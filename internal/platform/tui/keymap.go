package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// helpOrder is the order actions are listed in the help bar.
var helpOrder = []core.Action{
	core.ActionLeft,
	core.ActionRight,
	core.ActionUp,
	core.ActionDown,
	core.ActionPrimary,
	core.ActionSecondary,
	core.ActionStart,
	core.ActionPause,
	core.ActionQuit,
}

var actionHelp = map[core.Action]string{
	core.ActionLeft:      "left",
	core.ActionRight:     "right",
	core.ActionUp:        "up",
	core.ActionDown:      "down",
	core.ActionPrimary:   "fire",
	core.ActionSecondary: "alt",
	core.ActionStart:     "start",
	core.ActionPause:     "pause",
	core.ActionQuit:      "quit",
}

// GameKeyMap translates Bubble Tea key messages to game actions using the
// per-game bindings from config.
type GameKeyMap struct {
	bindings   map[core.Action]key.Binding
	Screenshot key.Binding
}

// NewGameKeyMap builds a key map from action -> key names. Config key names
// use "space" for the space bar.
func NewGameKeyMap(bindings map[core.Action][]string) GameKeyMap {
	km := GameKeyMap{
		bindings: make(map[core.Action]key.Binding, len(helpOrder)),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
	for _, a := range helpOrder {
		names := bindings[a]
		if len(names) == 0 {
			km.bindings[a] = key.NewBinding(key.WithDisabled())
			continue
		}
		var keys []string
		for _, n := range names {
			keys = append(keys, teaKeys(n)...)
		}
		km.bindings[a] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(names, "/"), actionHelp[a]),
		)
	}
	return km
}

// teaKeys converts a config key name to the strings Bubble Tea may report
// for it.
func teaKeys(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "space" {
		return []string{" ", "space"}
	}
	return []string{name}
}

// Actions returns every action bound to the pressed key, in help order.
// One key may drive several actions, e.g. space for start and fire.
func (k GameKeyMap) Actions(msg tea.KeyMsg) []core.Action {
	var out []core.Action
	for _, a := range helpOrder {
		if b, ok := k.bindings[a]; ok && key.Matches(msg, b) {
			out = append(out, a)
		}
	}
	return out
}

// Binding returns the binding of an action.
func (k GameKeyMap) Binding(a core.Action) key.Binding {
	return k.bindings[a]
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.bindings[core.ActionLeft],
		k.bindings[core.ActionRight],
		k.bindings[core.ActionUp],
		k.bindings[core.ActionDown],
		k.bindings[core.ActionPrimary],
		k.bindings[core.ActionPause],
		k.bindings[core.ActionQuit],
	}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.bindings[core.ActionLeft], k.bindings[core.ActionRight], k.bindings[core.ActionUp], k.bindings[core.ActionDown]},
		{k.bindings[core.ActionPrimary], k.bindings[core.ActionSecondary], k.bindings[core.ActionStart]},
		{k.bindings[core.ActionPause], k.bindings[core.ActionQuit], k.Screenshot},
	}
}

// MenuKeyMap defines the key bindings for the menus.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Back, k.Quit}}
}

// DefaultMenuKeyMap returns default menu key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
