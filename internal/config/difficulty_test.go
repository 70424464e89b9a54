package config

import (
	"math"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	})

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tt := range tests {
		if got := dm.Level(Progress{Score: tt.score}); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(score=%d) = %v, expected %v", tt.score, got, tt.want)
		}
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 600},
	})
	if got := dm.Level(Progress{Score: 1000, Tick: 300}); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level(tick=300) = %v, expected 0.5", got)
	}
}

func TestDifficultyWaveProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "wave", MaxAt: 4},
	})
	tests := []struct {
		wave int
		want float64
	}{
		{0, 0},
		{1, 0},
		{3, 0.5},
		{5, 1},
		{9, 1},
	}
	for _, tt := range tests {
		if got := dm.Level(Progress{Wave: tt.wave}); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(wave=%d) = %v, expected %v", tt.wave, got, tt.want)
		}
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
	})
	if dm.IsEnabled() {
		t.Error("IsEnabled() = true, expected false")
	}
	if got := dm.Level(Progress{Score: 1000, Tick: 1000}); got != 0.4 {
		t.Errorf("Level() = %v, expected initial level 0.4", got)
	}
}

func TestDifficultySpeed(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
	})
	if got := dm.Speed(2, Progress{}); got != 2 {
		t.Errorf("Speed at level 0 = %v, expected 2", got)
	}
	if got := dm.Speed(2, Progress{Score: 100}); math.Abs(got-3) > 1e-9 {
		t.Errorf("Speed at level 1 = %v, expected 3", got)
	}
}

func TestDifficultyFireInterval(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{FireReduction: 1000},
	})
	if got := dm.FireInterval(80, Progress{}); got != 80 {
		t.Errorf("FireInterval at level 0 = %d, expected 80", got)
	}
	// Reduction larger than the interval is floored at a quarter.
	if got := dm.FireInterval(80, Progress{Score: 100}); got != 20 {
		t.Errorf("FireInterval at level 1 = %d, expected 20", got)
	}
	if got := dm.FireInterval(1, Progress{Score: 100}); got != 1 {
		t.Errorf("FireInterval(1) = %d, expected 1", got)
	}
}

func TestInitialLevelClamps(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{3, 1}, {-1, 0}} {
		dm := NewDifficultyManager(DifficultyConfig{InitialLevel: tt.in})
		if got := dm.Level(Progress{}); got != tt.want {
			t.Errorf("initial %v: Level() = %v, expected %v", tt.in, got, tt.want)
		}
	}
}
