package core

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mat-arcade/internal/matinput"
)

// RuntimeConfig is handed to games when they reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// Pads is the mat-press source. Nil means keyboard-only play.
	Pads     matinput.Source
	PadGroup int // mat group to listen to, matinput.DefaultGroup if zero

	// Logger receives session logs. Nil uses the default logger.
	Logger *log.Logger
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary a game reports to the platform each tick.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
