package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

func TestSessionBest(t *testing.T) {
	s := NewSession()
	s.Record("arena", 120)
	s.Record("arena", 80)
	s.Record("breakout", 300)

	if got := s.Best("arena"); got != 120 {
		t.Errorf("Best(arena) = %d, want 120", got)
	}
	if got := s.Plays("arena"); got != 2 {
		t.Errorf("Plays(arena) = %d, want 2", got)
	}
	if got := s.Best("invaders"); got != 0 {
		t.Errorf("Best(invaders) = %d, want 0", got)
	}
	ranked := s.Ranked()
	if len(ranked) != 2 || ranked[0] != "breakout" || ranked[1] != "arena" {
		t.Errorf("Ranked = %v", ranked)
	}
}

func TestGameTableRows(t *testing.T) {
	s := NewSession()
	s.Record("b", 42)
	games := []registry.Info{
		{ID: "a", Title: "Alpha", Genre: "shooter"},
		{ID: "b", Title: "Beta", Genre: "paddle"},
	}
	tbl := gameTable(games, s, 80, 24)
	rows := tbl.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][2] != "-" || rows[1][2] != "42" {
		t.Errorf("best column = %q, %q", rows[0][2], rows[1][2])
	}

	narrow := gameTable(games, s, 40, 24)
	if got := len(narrow.Columns()); got != 3 {
		t.Errorf("narrow columns = %d, want 3", got)
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
