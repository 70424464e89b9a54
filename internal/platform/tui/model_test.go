package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/engine"
)

type fakeGame struct {
	frames []core.InputFrame
	state  core.GameState
	resets int
	desc   *engine.Descriptor
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState    { return g.state }
func (g *fakeGame) Descriptor() *engine.Descriptor {
	return g.desc
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	return core.StepResult{State: g.state, Ticks: 1}
}

func newTestModel(t *testing.T, g *fakeGame, session *Session) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 21, TickRate: 60, Seed: 1}
	keys := config.GameConfig{}.Bindings()
	return NewModel(g, cfg, Options{Keys: keys, Session: session})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok)
	return mm, cmd
}

func TestModelFeedsSampledInput(t *testing.T) {
	g := &fakeGame{desc: &engine.Descriptor{Width: 800, Height: 400}}
	m := newTestModel(t, g, nil)
	require.Equal(t, 1, g.resets)

	t0 := time.Unix(100, 0)
	m, _ = update(t, m, FrameMsg(t0))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m, cmd := update(t, m, FrameMsg(t0.Add(50*time.Millisecond)))
	require.NotNil(t, cmd, "next frame is scheduled")

	require.Len(t, g.frames, 3)
	require.True(t, g.frames[0].WasPressed(core.ActionRight))
	require.False(t, g.frames[1].WasPressed(core.ActionRight), "edge is seen once")
	require.True(t, g.frames[2].IsHeld(core.ActionRight))
	_ = m
}

func TestModelMousePointer(t *testing.T) {
	for _, phase := range []core.Phase{core.PhaseIdle, core.PhaseRunning, core.PhaseOver} {
		t.Run(phase.String(), func(t *testing.T) {
			g := &fakeGame{desc: &engine.Descriptor{Width: 800, Height: 400}, state: core.GameState{Phase: phase}}
			m := newTestModel(t, g, nil)

			t0 := time.Unix(100, 0)
			m, _ = update(t, m, FrameMsg(t0))
			m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
			_, _ = update(t, m, FrameMsg(t0.Add(20*time.Millisecond)))

			require.NotEmpty(t, g.frames)
			in := g.frames[0]
			require.True(t, in.Aiming)
			require.InDelta(t, 405.0, in.Pointer.X, 1e-9)
			require.InDelta(t, 210.0, in.Pointer.Y, 1e-9)
			require.True(t, in.WasPressed(core.ActionPrimary))
			require.True(t, in.WasPressed(core.ActionStart), "a click always presses start")
		})
	}
}

func TestModelQuitStopsFrames(t *testing.T) {
	session := NewSession()
	g := &fakeGame{state: core.GameState{Score: 30, BestScore: 70}}
	m := newTestModel(t, g, session)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	require.True(t, m.Quitting())
	require.Equal(t, 70, session.Best("fake"))
	require.Equal(t, "", m.View())

	_, cmd = update(t, m, FrameMsg(time.Unix(200, 0)))
	require.Nil(t, cmd, "no frame is scheduled after quit")
	require.Empty(t, g.frames)
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	require.Equal(t, 1, g.resets, "resizing must not reset the game")

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 30)
	require.Contains(t, lines[0], "fake")
	require.Contains(t, view, "quit")
}

type countingInput struct {
	src engine.InputSource
	n   int
}

func (c *countingInput) Snapshot() core.InputFrame {
	c.n++
	return c.src.Snapshot()
}

func TestModelWrapInput(t *testing.T) {
	g := &fakeGame{}
	var wrapped *countingInput
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, Options{
		WrapInput: func(src engine.InputSource) engine.InputSource {
			wrapped = &countingInput{src: src}
			return wrapped
		},
	})

	t0 := time.Unix(100, 0)
	m, _ = update(t, m, FrameMsg(t0))
	_, _ = update(t, m, FrameMsg(t0.Add(50*time.Millisecond)))
	require.NotNil(t, wrapped)
	require.Equal(t, 3, wrapped.n)
	require.Len(t, g.frames, 3)
}
