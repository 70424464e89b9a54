package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// defaultLevelLabel is the first entry, which keeps the configured layout.
const defaultLevelLabel = "Default"

// LevelMenuModel lets users pick a named layout for games that ship several.
type LevelMenuModel struct {
	game     registry.Info
	cursor   int
	width    int
	help     help.Model
	keys     MenuKeyMap
	choosing bool
	level    string
	back     bool
	quitting bool
}

// NewLevelMenuModel creates a level picker for game.
func NewLevelMenuModel(game registry.Info, width int) LevelMenuModel {
	h := help.New()
	h.Width = width
	return LevelMenuModel{
		game:     game,
		width:    width,
		help:     h,
		keys:     DefaultMenuKeyMap(),
		choosing: true,
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.game.Levels) {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.choosing = false
		if m.cursor > 0 {
			m.level = m.game.Levels[m.cursor-1]
		}
		return m, tea.Quit
	}
	return m, nil
}

// View renders the level list.
func (m LevelMenuModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(m.game.Title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select level:", m.width))
	b.WriteString("\n\n")

	labels := append([]string{defaultLevelLabel}, m.game.Levels...)
	for i, label := range labels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%2d. %s", cursor, i+1, label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Level returns the chosen level ID; "" keeps the default layout.
func (m LevelMenuModel) Level() string {
	return m.level
}

// Chosen reports whether a level was picked.
func (m LevelMenuModel) Chosen() bool {
	return !m.choosing
}

// RunLevelMenu runs the level picker. ok is false when the user backed out.
func RunLevelMenu(game registry.Info, cfg core.RuntimeConfig) (level string, ok bool, err error) {
	p := tea.NewProgram(NewLevelMenuModel(game, cfg.ScreenW), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, isLevel := finalModel.(LevelMenuModel)
	if !isLevel || !m.Chosen() {
		return "", false, nil
	}
	return m.Level(), true, nil
}
