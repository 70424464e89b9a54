package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Phase is the coarse state of a play session.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseOver
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends a run.
func (p Phase) Terminal() bool {
	return p == PhaseOver || p == PhaseWon
}

// GameState is the read-only HUD projection of a run.
type GameState struct {
	Phase     Phase
	Score     int
	BestScore int
	Wave      int
	Health    int
	MaxHealth int
	Paused    bool
}

// GameOver reports whether the run has ended, won or lost.
func (s GameState) GameOver() bool {
	return s.Phase.Terminal()
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Ticks int // logic ticks executed, 0 when the phase gated the step
}
