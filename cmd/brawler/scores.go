package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawler/internal/registry"
	"github.com/vovakirdan/tui-brawler/internal/storage"
)

var flagRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game.
With --runs, show the most recent runs instead.

Examples:
  brawler scores brawler
  brawler scores brawler --runs
  brawler scores snake`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show recent runs instead of top scores")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'brawler list' to see available games.")
		os.Exit(1)
	}

	// Get game title
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

	if flagRuns {
		printRuns(store, gameID, title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'brawler play %s' to set the first high score!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

func printRuns(store *storage.Store, gameID, title string) {
	runs, err := store.RecentRuns(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Recent Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-5s  %-4s  %-5s  %-8s  %-8s  %s\n", "Date", "Level", "Wave", "Kills", "Score", "Outcome", "Time")
	fmt.Printf("  %-16s  %-5s  %-4s  %-5s  %-8s  %-8s  %s\n", "----", "-----", "----", "-----", "-----", "-------", "----")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-5d  %-4d  %-5d  %-8d  %-8s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Level, r.Wave, r.Kills, r.Score, r.Outcome,
			time.Duration(r.Duration)*time.Second,
		)
	}
}
