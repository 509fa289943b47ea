package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawler/internal/registry"
	"github.com/vovakirdan/tui-brawler/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with its best recorded score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Scores are optional here; a missing database just hides the column.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	idWidth := 2 // "ID" header
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %-14s  %s\n", idWidth, "ID", "Title", "Best")
	fmt.Printf("  %-*s  %-14s  %s\n", idWidth, "--", "-----", "----")

	for _, g := range games {
		best := "-"
		if s, ok := stats[g.ID]; ok && s.GamesCount > 0 {
			best = fmt.Sprintf("%d", s.HighScore)
		}
		fmt.Printf("  %-*s  %-14s  %s\n", idWidth, g.ID, g.Title, best)
	}

	fmt.Println()
	fmt.Println("Run 'brawler play <id>' to play a game.")
}
