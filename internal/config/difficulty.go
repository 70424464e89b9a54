package config

// Progress is the run state a difficulty curve is keyed on.
type Progress struct {
	Score int
	Tick  int
	Wave  int
}

// DifficultyManager maps run progress onto opponent speed and fire rate.
type DifficultyManager struct {
	cfg  DifficultyConfig
	base float64
}

// NewDifficultyManager creates a manager for cfg. The initial level is
// clamped to [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, base: unit(cfg.InitialLevel)}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty in [0, 1]. It starts at the initial level and
// rises linearly to 1 as the tracked counter reaches max_at.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.base
	}

	var n int
	switch d.cfg.Progression.Type {
	case "score":
		n = p.Score
	case "time":
		n = p.Tick
	case "wave":
		// Wave 1 is the starting point.
		n = p.Wave - 1
	default:
		return d.base
	}

	span := float64(max(d.cfg.Progression.MaxAt, 1))
	return d.base + unit(float64(n)/span)*(1-d.base)
}

// Speed scales an opponent speed from base up to
// base * (1 + speed_multiplier) at full difficulty.
func (d *DifficultyManager) Speed(base float64, p Progress) float64 {
	return base * (1 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

// FireInterval shortens a fire or spawn interval as difficulty rises. The
// result never drops below a quarter of base, nor below one tick.
func (d *DifficultyManager) FireInterval(base int, p Progress) int {
	cut := int(d.Level(p) * float64(d.cfg.Scaling.FireReduction))
	return max(base-cut, base/4, 1)
}

func unit(v float64) float64 {
	return min(max(v, 0), 1)
}
