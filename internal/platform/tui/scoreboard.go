package tui

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// Session keeps the best score per game for the lifetime of the process.
// Nothing is persisted.
type Session struct {
	mu    sync.Mutex
	best  map[string]int
	plays map[string]int
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		best:  make(map[string]int),
		plays: make(map[string]int),
	}
}

// Record stores the outcome of one play.
func (s *Session) Record(gameID string, best int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays[gameID]++
	if best > s.best[gameID] {
		s.best[gameID] = best
	}
}

// Best returns the session best score of a game.
func (s *Session) Best(gameID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best[gameID]
}

// Plays returns how many times a game was played this session.
func (s *Session) Plays(gameID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plays[gameID]
}

// Ranked returns the IDs of played games, best score first.
func (s *Session) Ranked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.plays))
	for id := range s.plays {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if s.best[ids[i]] != s.best[ids[j]] {
			return s.best[ids[i]] > s.best[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

// gameTable builds the game picker: one row per registered game with its
// session best.
func gameTable(games []registry.Info, session *Session, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Game", Width: 22},
		{Title: "Genre", Width: 10},
		{Title: "Best", Width: 8},
		{Title: "Plays", Width: 6},
	}
	if width > 0 && width < 56 {
		columns = columns[:3]
		columns[0].Width = max(width-24, 10)
	}

	rows := make([]table.Row, len(games))
	for i, g := range games {
		best, plays := "-", "0"
		if session != nil && session.Plays(g.ID) > 0 {
			best = fmt.Sprintf("%d", session.Best(g.ID))
			plays = fmt.Sprintf("%d", session.Plays(g.ID))
		}
		rows[i] = table.Row{g.Title, g.Genre, best, plays}[:len(columns)]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(min(len(rows)+1, height-8), 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}
