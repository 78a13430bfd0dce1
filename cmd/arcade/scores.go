package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mat-arcade/internal/games/kit"
	"github.com/vovakirdan/mat-arcade/internal/registry"
	"github.com/vovakirdan/mat-arcade/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show top sessions for a game",
	Long: `Display the best sessions for the specified game.

Examples:
  arcade scores monk
  arcade scores roach --limit 20
  arcade scores roach --recent`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest sessions instead of the best")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var sessions []storage.SessionRecord
	heading := "Top Sessions"
	if flagScoresRecent {
		heading = "Recent Sessions"
		sessions, err = store.RecentSessions(gameID, flagScoresLimit)
	} else {
		sessions, err = store.TopSessions(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-5s  %-5s  %-9s  %s\n", "Rank", "Score", "Combo", "Acc", "Time", "Source", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-5s  %-5s  %-9s  %s\n", "----", "-----", "-----", "---", "----", "------", "----")

	for i, rec := range sessions {
		fmt.Printf("  %-4d  %-7d  x%-5d  %-5s  %-5s  %-9s  %s\n",
			i+1,
			rec.Score,
			rec.MaxCombo,
			fmt.Sprintf("%d%%", rec.Accuracy),
			kit.FormatSeconds(rec.Elapsed),
			rec.Source,
			rec.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil || stats == nil {
		return
	}
	fmt.Println()
	fmt.Printf("Played: %d  Best: %d  Avg: %.0f  Best combo: x%d",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestCombo)
	if stats.AvgAccuracy > 0 {
		fmt.Printf("  Avg accuracy: %.0f%%", stats.AvgAccuracy)
	}
	fmt.Println()
}
