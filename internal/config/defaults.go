package config

import (
	_ "embed"
)

//go:embed defaults/monk.yaml
var defaultMonkYAML []byte

//go:embed defaults/roach.yaml
var defaultRoachYAML []byte

// DefaultMonkConfig returns the default Monk Dodge configuration.
func DefaultMonkConfig() MonkConfig {
	return MonkConfig{
		Field: MonkField{
			Width:      400,
			Height:     600,
			Lanes:      4,
			EntitySize: 60,
			FallSpeed:  2,
		},
		Player: MonkPlayer{
			Lives:     3,
			StartLane: 0,
			Height:    100,
			Hitbox:    Insets{Top: 20, Right: 20, Bottom: 10, Left: 20},
		},
		Spawn: MonkSpawn{
			AutoEnemies:       true,
			EnemyIntervalMs:   1500,
			EnemyFloorMs:      450,
			EnemyDecayMs:      10,
			PowerupIntervalMs: 15000,
			EnemySkins:        []string{"hornet", "poop", "rotten fruit", "snail"},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 120,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0,
				IntervalReduction: 0.3,
			},
		},
	}
}

// DefaultRoachConfig returns the default Roach Smash configuration.
func DefaultRoachConfig() RoachConfig {
	return RoachConfig{
		Grid:  RoachGrid{Rows: 3, Cols: 3},
		Round: RoachRound{DurationSec: 60},
		Targets: RoachTargets{
			IntervalMs: 1200,
			FloorMs:    400,
			DecayMs:    12,
			TTLMs:      1500,
			TTLFloorMs: 600,
			TTLDecayMs: 12,
			Skins:      []string{"roach"},
		},
		Scoring: RoachScoring{Base: 10, BonusStep: 5, BonusEvery: 5},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0,
				IntervalReduction: 0.25,
			},
		},
	}
}
