// Package tui provides the Bubble Tea surface for the arcade: it paints
// frames, feeds key and mouse events into the engine's input sampler and
// drives the fixed-timestep loop from repaint messages.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the repaint rate when none is configured.
const DefaultFPS = 60

// FrameMsg asks the model to advance the loop and repaint.
type FrameMsg time.Time

// frameCmd schedules the next frame. Simulation speed does not depend on
// fps; the loop converts elapsed time into whole ticks.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
