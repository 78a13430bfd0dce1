// arcade runs reflex minigames in the terminal, driven by the keyboard or by
// floor mat pads streamed from a realtime database.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show top sessions for a game
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--log <path>        - Set log file (default: ~/.arcade/arcade.log, "-" for stderr)
//	--mat <backend>     - Mat input: none, firebase or ws
//	--mat-url <url>     - Database URL or relay endpoint
//	--mat-group <n>     - Mat group to listen to
//	--mute              - Start with sound off
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/mat-arcade/internal/games/monk"
	_ "github.com/vovakirdan/mat-arcade/internal/games/roach"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagVerbose bool
	flagMute    bool

	// Mat input flags; empty values fall back to the environment
	flagMat      string
	flagMatURL   string
	flagMatAuth  string
	flagMatGroup int

	// Game tuning
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Mat Arcade - reflex games for the keyboard and floor mats",
	Long: `Mat Arcade runs short reflex games in your terminal. Each game can be
played on the keyboard or on a set of floor mat pads whose presses
arrive through a Firebase Realtime Database (or a WebSocket relay).

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View top sessions

Mat input is configured with flags or the environment (a .env file in the
working directory is loaded first):
  ARCADE_MAT              none, firebase or ws
  FIREBASE_DATABASE_URL   database URL or relay endpoint
  FIREBASE_AUTH           optional auth token
  MAT_GROUP_ID            mat group (default 1)

Examples:
  arcade list
  arcade play monk
  arcade play roach --mat firebase --mat-url https://my-db.firebaseio.com
  arcade menu --mute
  arcade serve --ssh :2222 --relay :8080
  arcade scores roach`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagLogPath, "log", "~/.arcade/arcade.log", `Log file ("-" logs to stderr)`)
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")
	pf.BoolVar(&flagMute, "mute", false, "Start with sound off")
	pf.StringVar(&flagMat, "mat", "", "Mat input backend: none, firebase, ws")
	pf.StringVar(&flagMatURL, "mat-url", "", "Firebase database URL or ws:// relay endpoint")
	pf.StringVar(&flagMatAuth, "mat-auth", "", "Firebase auth token")
	pf.IntVar(&flagMatGroup, "mat-group", 0, "Mat group to listen to (0 = from environment)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
