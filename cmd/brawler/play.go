package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/platform/tui"
	"github.com/vovakirdan/tui-brawler/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Brawler controls:
  A/D, Left/Right   - Walk
  Space/J           - Attack with the current weapon
  K                 - Dash (brief invulnerability)
  L                 - Energy burst
  Tab/E             - Switch weapon
  Enter             - Confirm / next level
  P/Esc             - Pause
  R                 - Retry (after game over)
  B                 - Back to menu
  Q/Ctrl+C          - Quit

Snake controls:
  Arrows/WASD       - Steer
  P/Esc             - Pause
  R                 - Restart (after game over)

Difficulty options:
  easy   - More health, slower enemy attacks, scaling starts at zero
  normal - Stock tuning, scaling starts at 30%
  hard   - Less health, faster enemy attacks, scaling starts at 70%
  fixed  - No enemy scaling between waves

Examples:
  brawler play brawler
  brawler play brawler --difficulty easy
  brawler play brawler --config ./my-brawler.yaml --watch
  brawler play snake --mute`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'brawler list' to see available games.")
		os.Exit(1)
	}

	session, err := startLocalSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create game instance after the session applied config flags
	game, err := registry.Create(gameID)
	if err != nil {
		session.close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	_, runErr := tui.Run(game, session.store, runtimeConfig(), session.safe)

	// Close session before potential exit
	session.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the game runtime config from the terminal size
// and the global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
