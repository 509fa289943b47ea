package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/registry"
	"github.com/vovakirdan/tui-brawler/internal/storage"
)

// Model is the Bubble Tea model for running a game.
//
// The model owns the frame clock: every tick carries the wall-clock time
// since the previous one in InputFrame.Elapsed. While the game reports
// itself idle no ticks are scheduled; the next key press restarts the
// clock without counting the idle gap.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	lastFrame  time.Time
	ticking    bool
	plain      bool // no colors (safe mode)
	embedded   bool // back-to-menu is handled by a parent model
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		ticking:    true, // Init schedules the first tick
	}
}

// WithPlainRendering returns a copy of the model that renders without colors.
func (m Model) WithPlainRendering(plain bool) Model {
	m.plain = plain
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	if seeder, ok := m.game.(registry.HighScoreSeeder); ok && m.store != nil {
		if best, err := m.store.HighScore(m.game.ID()); err == nil {
			seeder.SeedHighScore(best)
		}
	}

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Wake the frame loop; the idle gap is not simulated.
	if !m.ticking {
		m.ticking = true
		m.lastFrame = time.Time{}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	// A resize can leave or enter the small-window pause.
	if !m.ticking {
		m.ticking = true
		m.lastFrame = time.Time{}
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

// handleTick runs one frame of the simulation.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame)
	}
	m.lastFrame = now

	prev := m.gameState
	back := m.inputFrame.Has(core.ActionBack)

	m.inputFrame.Elapsed = dt
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.record()

	// Back on a screen that did not react to it leaves the game.
	if back && prev.Idle && m.gameState == prev {
		m.backToMenu = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.gameState.Idle {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// record persists scores and run summaries after a frame.
func (m *Model) record() {
	if m.store == nil {
		return
	}

	if rep, ok := m.game.(registry.RunReporter); ok {
		if run, ok := rep.TakeRun(); ok {
			m.saveRun(run)
		}
		return
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveScore(m.game.ID(), m.gameState.Score)
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}
}

func (m *Model) saveRun(run registry.RunSummary) {
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(storage.RunRecord{
		GameID:   m.game.ID(),
		Level:    run.Level,
		Wave:     run.Wave,
		Score:    run.Score,
		Kills:    run.Kills,
		Outcome:  run.Outcome,
		Duration: int(run.Duration.Seconds()),
	})
	if run.Final() && run.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveScore(m.game.ID(), run.Score)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".brawler", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	if m.plain {
		return m.screen.String()
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting && !m.backToMenu
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
// It returns true if the player left with Back rather than quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, plain bool) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg).WithPlainRendering(plain)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
