package catalog

import (
	"errors"
	"testing"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		slug  string
		title string
		color core.Color
	}{
		{"subway-surfers", "Subway Surfers", core.ColorBrightGreen},
		{"1v1lol", "1v1.lol", core.ColorBrightMagenta},
		{"  Roblox ", "Roblox", core.ColorBrightYellow},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			e, err := Lookup(tt.slug)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if e.Title != tt.title || e.Color != tt.color {
				t.Errorf("got %+v", e)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("tetris"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListSorted(t *testing.T) {
	list, err := List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 11 {
		t.Fatalf("len = %d, want 11", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Slug >= list[i].Slug {
			t.Fatalf("not sorted at %d: %s >= %s", i, list[i-1].Slug, list[i].Slug)
		}
	}
}

func TestParseRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no title", "embeds:\n  x:\n    url: https://x.io\n"},
		{"relative url", "embeds:\n  x:\n    title: X\n    url: /play\n"},
		{"ftp url", "embeds:\n  x:\n    title: X\n    url: ftp://x.io\n"},
		{"not yaml", "embeds: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
