package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mat-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game in the arcade with the number of mat pads it reads.
All games can also be played on the keyboard (keys 1-9 stand in for pads).`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	idW, titleW := len("ID"), len("Title")
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-4s  %s\n", idW, "ID", titleW, "Title", "Pads", "About")
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %-4d  %s\n", idW, g.ID, titleW, g.Title, g.Pads, g.Blurb)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
