// Package monk implements Monk Dodge: hornets, poop, rotten fruit and
// snails fall down four lanes while the monk steps between the bottom
// cells to dodge them and catch powerups.
package monk

import (
	"github.com/vovakirdan/mat-arcade/internal/config"
	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/games/kit"
	"github.com/vovakirdan/mat-arcade/internal/registry"
	"github.com/vovakirdan/mat-arcade/internal/session"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

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

// Game implements Monk Dodge.
type Game struct {
	cfg     config.MonkConfig
	rules   *Rules
	runner  *kit.Runner
	runtime core.RuntimeConfig
}

// New creates a new Monk Dodge game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "monk"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Monk Dodge"
}

// Reset builds a fresh idle session. A previous session is torn down first.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.runner != nil {
		g.runner.Close()
	}
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadMonk(configPath)
	if err != nil {
		if runtime.Logger != nil {
			runtime.Logger.Warn("using default monk config", "error", err)
		}
		cfg = config.DefaultMonkConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyMonkPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.rules = NewRules(cfg)

	ctrl := session.New(g.rules, sim.NewState(1, cfg.Player.Lives), session.Options{
		Seed:   runtime.Seed,
		Pads:   runtime.Pads,
		Group:  runtime.PadGroup,
		Logger: runtime.Logger,
	})
	g.runner = kit.NewRunner(ctrl, runtime.TickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	ctrl := g.runner.Session()
	if ctrl.Phase() == sim.PhasePlaying {
		lane := ctrl.State().PlayerCell
		if in.Has(core.ActionLeft) {
			ctrl.Press(lane - 1)
		}
		if in.Has(core.ActionRight) {
			ctrl.Press(lane + 1)
		}
		for _, l := range in.Drops() {
			g.rules.Drop(ctrl, l)
		}
	}
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

// Close tears down the running session.
func (g *Game) Close() {
	if g.runner != nil {
		g.runner.Close()
	}
}

func init() {
	registry.Register(registry.Entry{
		ID:    "monk",
		Title: "Monk Dodge",
		Blurb: "Step between four lanes and dodge what falls. Passing enemies pay your combo.",
		Pads:  config.DefaultMonkConfig().Field.Lanes,
		New:   func() registry.Game { return New() },
	})
}
