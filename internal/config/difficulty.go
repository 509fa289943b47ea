package config

import (
	"math"

	"github.com/vovakirdan/tui-brawler/internal/games/brawler/sim"
)

// DifficultyManager calculates enemy scaling based on wave or score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on wave/score.
func (d *DifficultyManager) Level(wave, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "wave":
		// wave 1 is the baseline
		progress = float64(wave-1) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// EnemyHealth scales a base health value.
func (d *DifficultyManager) EnemyHealth(base, wave, score int) int {
	level := d.Level(wave, score)
	return int(math.Round(float64(base) * (1.0 + level*d.cfg.Scaling.HealthMultiplier)))
}

// ScoreValue scales the points an enemy is worth.
func (d *DifficultyManager) ScoreValue(base, wave, score int) int {
	level := d.Level(wave, score)
	return int(math.Round(float64(base) * (1.0 + level*d.cfg.Scaling.ScoreMultiplier)))
}

// ScaleEnemy applies the current difficulty to a freshly spawned enemy.
func (d *DifficultyManager) ScaleEnemy(e sim.Enemy, wave, score int) sim.Enemy {
	e.MaxHealth = max(1, d.EnemyHealth(e.MaxHealth, wave, score))
	e.Health = e.MaxHealth
	e.ScoreValue = d.ScoreValue(e.ScoreValue, wave, score)
	return e
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
