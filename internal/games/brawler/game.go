// Package brawler plugs the combat simulation into the game platform:
// it maps platform actions onto sim intents, feeds the frame clock into
// the driver and draws the arena.
package brawler

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/events"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler/sim"
	"github.com/vovakirdan/tui-brawler/internal/registry"
)

// Minimum terminal size the arena can be drawn in.
const (
	MinWidth  = 40
	MinHeight = 14
)

// flashFrames is how many frames the HUD flashes after the player is hit.
const flashFrames = 6

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// publisher receives every gameplay event. Set by the platform before play.
var publisher events.Publisher = events.Discard

var logger = log.New(io.Discard)

// configGen is bumped whenever the config files change on disk.
var configGen atomic.Uint64

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetPublisher routes gameplay events to pub.
func SetPublisher(pub events.Publisher) {
	if pub == nil {
		pub = events.Discard
	}
	publisher = pub
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// NotifyConfigChanged makes every game reload its config the next time
// it sits in the menu.
func NotifyConfigChanged() {
	configGen.Add(1)
}

// Game is the brawler registered with the platform.
type Game struct {
	driver *sim.Driver
	cfg    config.BrawlerConfig
	gen    uint64
	seed   int64

	screenW, screenH int
	tooSmall         bool

	// Per-run bookkeeping for the run history.
	kills     int
	runStart  time.Duration
	finished  *registry.RunSummary
	lastState sim.Status
	lastScore int

	flash int
}

// New creates a new brawler instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("brawler", func() registry.Game { return New() })
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "brawler"
}

// Title returns the display title.
func (g *Game) Title() string {
	return "Neon Brawler"
}

// Reset loads the config and puts the game in its level-select menu.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	high := 0
	if g.driver != nil {
		high = g.driver.Snapshot().HighScore
	}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.seed = cfg.Seed
	g.kills = 0
	g.finished = nil
	g.flash = 0

	g.build(0)
	g.driver.Store().SetHighScore(high)
}

// build loads the config and replaces the driver. Levels up to unlocked
// stay unlocked.
func (g *Game) build(unlocked int) {
	g.gen = configGen.Load()

	cfg, err := config.LoadBrawler(configPath)
	if err != nil {
		logger.Warn("brawler config unreadable, using defaults", "err", err)
		cfg = config.DefaultBrawlerConfig()
	}
	config.ApplyBrawlerPreset(&cfg, difficultyPreset)

	simCfg, err := cfg.SimConfig()
	if err != nil {
		logger.Warn("brawler config invalid, using defaults", "err", err)
		cfg = config.DefaultBrawlerConfig()
		config.ApplyBrawlerPreset(&cfg, difficultyPreset)
		simCfg = sim.DefaultConfig()
	}
	g.cfg = cfg

	g.driver = sim.NewDriver(simCfg, g.seed, publisher, logger)
	g.driver.SetScaler(config.NewDifficultyManager(cfg.Difficulty))
	if unlocked > 0 {
		g.driver.Store().UnlockThrough(unlocked)
	}
	g.lastState = sim.StatusMenu
	g.lastScore = 0
}

// reloadIfStale swaps in a fresh driver when the config changed on disk.
// Only called from the menu so a run never changes rules mid-way.
func (g *Game) reloadIfStale() {
	if configGen.Load() == g.gen {
		return
	}
	st := g.driver.Snapshot()
	unlocked := 0
	for _, l := range st.Levels {
		if l.Unlocked {
			unlocked = l.ID
		}
	}
	g.build(unlocked)
	g.driver.Store().SetHighScore(st.HighScore)
	g.driver.Store().SelectLevel(st.CurrentLevel)
	logger.Info("brawler config reloaded")
}

// Resize adapts to a new terminal size without ending the run.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = width < MinWidth || height < MinHeight
}

// SeedHighScore seeds the persisted best score.
func (g *Game) SeedHighScore(score int) {
	g.driver.Store().SetHighScore(score)
}

// Driver exposes the underlying simulation driver.
func (g *Game) Driver() *sim.Driver {
	return g.driver
}

// Step handles input for the current status and advances the simulation
// by the frame's elapsed time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	store := g.driver.Store()
	switch store.Snapshot().Status {
	case sim.StatusMenu:
		g.reloadIfStale()
		store = g.driver.Store()
		st := store.Snapshot()
		switch {
		case in.Has(core.ActionLeft) || in.Has(core.ActionUp):
			store.SelectLevel(st.CurrentLevel - 1)
		case in.Has(core.ActionRight) || in.Has(core.ActionDown):
			store.SelectLevel(st.CurrentLevel + 1)
		case in.Has(core.ActionConfirm) || in.Has(core.ActionAttack):
			g.start()
		}

	case sim.StatusPlaying:
		if in.Has(core.ActionPause) || in.Has(core.ActionBack) {
			g.driver.PauseGame()
			break
		}
		if in.Has(core.ActionLeft) {
			store.MovePlayer(sim.MoveLeft)
		} else if in.Has(core.ActionRight) {
			store.MovePlayer(sim.MoveRight)
		}
		if in.Has(core.ActionAttack) {
			store.TriggerAttack()
		}
		if in.Has(core.ActionDash) {
			store.TriggerDash()
		}
		if in.Has(core.ActionSpecial) {
			store.TriggerSpecial()
		}
		if in.Has(core.ActionSwitch) {
			store.CycleWeapon()
		}

	case sim.StatusPaused:
		switch {
		case in.Has(core.ActionPause) || in.Has(core.ActionConfirm):
			g.driver.ResumeGame()
		case in.Has(core.ActionBack) || in.Has(core.ActionRestart):
			g.driver.ResetGame()
		}

	case sim.StatusGameOver:
		switch {
		case in.Has(core.ActionRestart) || in.Has(core.ActionConfirm):
			g.start()
		case in.Has(core.ActionBack):
			g.driver.ResetGame()
		}

	case sim.StatusLevelComplete:
		switch {
		case in.Has(core.ActionConfirm) || in.Has(core.ActionAttack):
			if !g.driver.NextLevel() {
				g.driver.ResetGame()
			}
		case in.Has(core.ActionBack):
			g.driver.ResetGame()
		}
	}

	rep := g.driver.Advance(in.Elapsed)
	g.kills += rep.Kills
	for _, evt := range rep.Events {
		if evt.Kind == events.PlayerDamaged {
			g.flash = flashFrames
		}
	}
	if g.flash > 0 {
		g.flash--
	}
	g.trackRun()

	return core.StepResult{State: g.State()}
}

func (g *Game) start() {
	if g.driver.StartGame() {
		g.kills = 0
		g.runStart = g.driver.Snapshot().Elapsed
	}
}

// trackRun records a summary whenever a run ends or a level is cleared.
func (g *Game) trackRun() {
	st := g.driver.Snapshot()
	prev, prevScore := g.lastState, g.lastScore
	g.lastState, g.lastScore = st.Status, st.Score
	if prev == st.Status {
		return
	}

	// Returning to the menu clears the score, so use the last one seen.
	var outcome string
	score := st.Score
	switch {
	case st.Status == sim.StatusGameOver:
		outcome = registry.OutcomeDeath
	case st.Status == sim.StatusLevelComplete:
		outcome = registry.OutcomeCleared
	case st.Status == sim.StatusMenu && prev == sim.StatusPaused:
		outcome = registry.OutcomeQuit
		score = prevScore
	case st.Status == sim.StatusMenu && prev == sim.StatusLevelComplete:
		outcome = registry.OutcomeComplete
		score = prevScore
	default:
		return
	}
	g.finished = &registry.RunSummary{
		Level:    st.CurrentLevel,
		Wave:     st.CurrentWave,
		Score:    score,
		Kills:    g.kills,
		Outcome:  outcome,
		Duration: st.Elapsed - g.runStart,
	}
}

// TakeRun returns the most recently finished run once.
func (g *Game) TakeRun() (registry.RunSummary, bool) {
	if g.finished == nil {
		return registry.RunSummary{}, false
	}
	r := *g.finished
	g.finished = nil
	return r, true
}

// State returns the platform-facing game state.
func (g *Game) State() core.GameState {
	st := g.driver.Snapshot()
	return core.GameState{
		Score:    st.Score,
		GameOver: st.Status == sim.StatusGameOver,
		Paused:   st.Status == sim.StatusPaused,
		Idle:     g.tooSmall || st.Status != sim.StatusPlaying,
	}
}

var _ registry.Game = (*Game)(nil)
var _ registry.RunReporter = (*Game)(nil)
var _ registry.Resizer = (*Game)(nil)
var _ registry.HighScoreSeeder = (*Game)(nil)
