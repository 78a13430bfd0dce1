// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import "time"

// MonkConfig contains all configuration for Monk Dodge.
type MonkConfig struct {
	Field      MonkField        `yaml:"field"`
	Player     MonkPlayer       `yaml:"player"`
	Spawn      MonkSpawn        `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MonkField defines the logical playfield. Positions are in logical units,
// not terminal cells; the renderer scales them down.
type MonkField struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Lanes      int     `yaml:"lanes"`
	EntitySize int     `yaml:"entity_size"`
	FallSpeed  float64 `yaml:"fall_speed"` // units per frame
}

// MonkPlayer defines the player's lives and hitbox.
type MonkPlayer struct {
	Lives     int    `yaml:"lives"`
	StartLane int    `yaml:"start_lane"`
	Height    int    `yaml:"height"` // height of the bottom row the monk stands in
	Hitbox    Insets `yaml:"hitbox"`
}

// Insets shrink a rectangle on each side.
type Insets struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// MonkSpawn defines enemy and powerup cadence.
type MonkSpawn struct {
	AutoEnemies       bool     `yaml:"auto_enemies"` // false leaves dropping to a second player
	EnemyIntervalMs   int      `yaml:"enemy_interval_ms"`
	EnemyFloorMs      int      `yaml:"enemy_floor_ms"`
	EnemyDecayMs      int      `yaml:"enemy_decay_ms"` // removed from the interval per elapsed second
	PowerupIntervalMs int      `yaml:"powerup_interval_ms"`
	EnemySkins        []string `yaml:"enemy_skins"`
}

// RoachConfig contains all configuration for Roach Smash.
type RoachConfig struct {
	Grid       RoachGrid        `yaml:"grid"`
	Round      RoachRound       `yaml:"round"`
	Targets    RoachTargets     `yaml:"targets"`
	Scoring    RoachScoring     `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RoachGrid defines the board size.
type RoachGrid struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// RoachRound defines the round length.
type RoachRound struct {
	DurationSec int `yaml:"duration_sec"`
}

// RoachTargets defines spawn cadence and target lifetime.
type RoachTargets struct {
	IntervalMs int      `yaml:"interval_ms"`
	FloorMs    int      `yaml:"floor_ms"`
	DecayMs    int      `yaml:"decay_ms"`
	TTLMs      int      `yaml:"ttl_ms"`
	TTLFloorMs int      `yaml:"ttl_floor_ms"`
	TTLDecayMs int      `yaml:"ttl_decay_ms"`
	Skins      []string `yaml:"skins"`
}

// RoachScoring defines points per hit: base + floor(combo/every) * step.
type RoachScoring struct {
	Base       int `yaml:"base"`
	BonusStep  int `yaml:"bonus_step"`
	BonusEvery int `yaml:"bonus_every"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time" or "none"
	MaxAt int    `yaml:"max_at"` // Seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to fall speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of the base interval removed at max difficulty
}

// Ms converts a millisecond setting to a duration.
func Ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

func applyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
		d.InitialLevel = 0
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}

// ApplyMonkPreset modifies the config based on a difficulty preset.
func ApplyMonkPreset(cfg *MonkConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
	case DifficultyHard:
		cfg.Player.Lives = 2
	}
}

// ApplyRoachPreset modifies the config based on a difficulty preset.
func ApplyRoachPreset(cfg *RoachConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Targets.TTLMs += cfg.Targets.TTLMs / 2
	case DifficultyHard:
		cfg.Targets.TTLMs -= cfg.Targets.TTLMs / 4
	}
}
