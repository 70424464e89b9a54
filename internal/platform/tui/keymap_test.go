package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

func TestGameKeyMapActions(t *testing.T) {
	km := NewGameKeyMap(map[core.Action][]string{
		core.ActionLeft:    {"left", "a"},
		core.ActionPrimary: {"space"},
		core.ActionStart:   {"enter", "space"},
		core.ActionQuit:    {"q"},
	})

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
	}{
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}},
		{"letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, []core.Action{core.ActionLeft}},
		{"shared key", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}, []core.Action{core.ActionPrimary, core.ActionStart}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionStart}},
		{"quit", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, []core.Action{core.ActionQuit}},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := km.Actions(tt.msg)
			if len(got) != len(tt.want) {
				t.Fatalf("Actions = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Actions[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGameKeyMapUnboundDisabled(t *testing.T) {
	km := NewGameKeyMap(map[core.Action][]string{core.ActionLeft: {"left"}})
	if km.Binding(core.ActionSecondary).Enabled() {
		t.Error("unbound action should be disabled")
	}
	if !km.Binding(core.ActionLeft).Enabled() {
		t.Error("bound action should be enabled")
	}
	if got := km.Binding(core.ActionLeft).Help().Desc; got != "left" {
		t.Errorf("help desc = %q", got)
	}
}

func TestMenuKeyMap(t *testing.T) {
	km := DefaultMenuKeyMap()
	if !key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Select) {
		t.Error("enter should select")
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, km.Back) {
		t.Error("esc should go back")
	}
}
