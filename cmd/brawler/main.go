// brawler is a real-time side-scrolling brawler for the terminal, with a
// Snake mini-game on the side.
//
// Usage:
//
//	brawler list              - List available games
//	brawler play <game>       - Play a game
//	brawler menu              - Start menu to pick games interactively
//	brawler serve             - Start SSH server for remote play
//	brawler scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>       - Set frame rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.brawler/scores.db)
//	--log-file <path>  - Write logs to a file (default: discarded)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-brawler/internal/games/brawler"
	_ "github.com/vovakirdan/tui-brawler/internal/games/snake"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brawler",
	Short: "Neon Brawler - a side-scrolling brawler in your terminal",
	Long: `Neon Brawler is a real-time side-scrolling brawler played in the
terminal. Fight escalating enemy waves across three levels with a sword,
a blaster, a shotgun and a plasma gun. Snake is included as a warm-up.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and run history

Examples:
  brawler list
  brawler play brawler
  brawler play brawler --difficulty hard
  brawler menu
  brawler serve --ssh :2222 --metrics :9090
  brawler scores brawler --runs`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.brawler/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
