package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-brawler/internal/games/brawler/sim"
)

func TestDifficultyLevelByWave(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "wave", MaxAt: 4},
		Scaling:     ScalingConfig{HealthMultiplier: 1.0, ScoreMultiplier: 0.5},
	})

	assert.Equal(t, 0.0, d.Level(1, 0))
	assert.Equal(t, 0.5, d.Level(3, 0))
	assert.Equal(t, 1.0, d.Level(5, 0))
	assert.Equal(t, 1.0, d.Level(50, 0))
}

func TestDifficultyInitialLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
	})
	assert.Equal(t, 0.5, d.Level(1, 0))
	assert.Equal(t, 0.75, d.Level(1, 500))

	d.SetEnabled(false)
	assert.False(t, d.IsEnabled())
	assert.Equal(t, 0.5, d.Level(1, 5000))

	d.SetInitialLevel(3)
	assert.Equal(t, 1.0, d.Level(1, 0))
}

func TestScaleEnemy(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "wave", MaxAt: 2},
		Scaling:     ScalingConfig{HealthMultiplier: 1.0, ScoreMultiplier: 0.5},
	})

	base := sim.Enemy{Health: 100, MaxHealth: 100, ScoreValue: 100}
	assert.Equal(t, base, d.ScaleEnemy(base, 1, 0))

	scaled := d.ScaleEnemy(base, 3, 0)
	assert.Equal(t, 200, scaled.MaxHealth)
	assert.Equal(t, 200, scaled.Health)
	assert.Equal(t, 150, scaled.ScoreValue)
}
