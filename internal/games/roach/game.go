// Package roach implements Roach Smash: roaches pop up on a 3x3 grid of
// mat pads and the player smashes them before they scurry away. Each round
// lasts a fixed time and ends with an accuracy summary.
package roach

import (
	"github.com/vovakirdan/mat-arcade/internal/config"
	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/games/kit"
	"github.com/vovakirdan/mat-arcade/internal/registry"
	"github.com/vovakirdan/mat-arcade/internal/session"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// Game implements Roach Smash.
type Game struct {
	cfg    config.RoachConfig
	rules  *Rules
	runner *kit.Runner
}

// New creates a new Roach Smash game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "roach"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Roach Smash"
}

// Reset builds a fresh idle session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.runner != nil {
		g.runner.Close()
	}

	cfg, err := config.LoadRoach(configPath)
	if err != nil {
		if runtime.Logger != nil {
			runtime.Logger.Warn("using default roach config", "error", err)
		}
		cfg = config.DefaultRoachConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRoachPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.rules = NewRules(cfg)

	ctrl := session.New(g.rules, sim.NewState(0, 0), session.Options{
		Seed:   runtime.Seed,
		Pads:   runtime.Pads,
		Group:  runtime.PadGroup,
		Logger: runtime.Logger,
	})
	g.runner = kit.NewRunner(ctrl, runtime.TickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.runner.Step(in)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.runner.State()
}

// Session returns the session controller.
func (g *Game) Session() *session.Controller {
	return g.runner.Session()
}

// Rules returns the active rules.
func (g *Game) Rules() *Rules {
	return g.rules
}

// Close tears down the running session.
func (g *Game) Close() {
	if g.runner != nil {
		g.runner.Close()
	}
}

func init() {
	grid := config.DefaultRoachConfig().Grid
	registry.Register(registry.Entry{
		ID:    "roach",
		Title: "Roach Smash",
		Blurb: "Smash roaches on the grid before they scurry off. The clock runs 60 seconds.",
		Pads:  grid.Rows * grid.Cols,
		New:   func() registry.Game { return New() },
	})
}
