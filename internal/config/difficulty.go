package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic game parameters from elapsed play time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(elapsed time.Duration) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "time" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(elapsed.Seconds()/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Interval returns a spawn cadence that shrinks linearly with elapsed
// seconds and never drops below floor:
//
//	max(floor, base' - decay*seconds)
//
// where base' is base shortened by the initial level. With progression
// disabled the cadence stays at base'.
func (d *DifficultyManager) Interval(base, floor, decay, elapsed time.Duration) time.Duration {
	scaled := time.Duration(float64(base) * (1.0 - d.initialLevel*d.cfg.Scaling.IntervalReduction))
	if d.IsEnabled() {
		scaled -= time.Duration(int64(elapsed/time.Second)) * decay
	}
	if scaled < floor {
		return floor
	}
	return scaled
}

// Speed returns the current speed based on difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, elapsed time.Duration) float64 {
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + d.Level(elapsed)*d.cfg.Scaling.SpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
