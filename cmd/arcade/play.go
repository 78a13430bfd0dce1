package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mat-arcade/internal/platform/tui"
	"github.com/vovakirdan/mat-arcade/internal/registry"
	"github.com/vovakirdan/mat-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Enter/Space  - Start
  Left/Right   - Move (monk)
  1-9          - Press pad / smash cell
  Z X C V      - Drop an enemy into lane 1-4 (monk, second player)
  P/Esc        - Pause
  R            - Restart
  M            - Mute
  B            - Back to menu
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play monk
  arcade play roach --difficulty hard
  arcade play monk --mat firebase --mat-group 2
  arcade play roach --config ./my-roach.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := openLogger(flagLogPath)
	defer closeLog()

	cfg := newRuntime(logger)
	applyGameFlags(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	sound := newSound(logger)
	_, runErr := tui.Run(game, store, cfg, sound)
	sound.Close()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game exited", "game", gameID, "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
