package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-brawler/internal/games/brawler/sim"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var brawler BrawlerConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("brawler"), &brawler))
	assert.Equal(t, DefaultBrawlerConfig(), brawler)

	var snake SnakeConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("snake"), &snake))
	assert.Equal(t, DefaultSnakeConfig(), snake)

	assert.Nil(t, GetDefaultYAML("missing"))
}

func TestDefaultSimConfigMatchesSimDefaults(t *testing.T) {
	cfg, err := DefaultBrawlerConfig().SimConfig()
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

func TestSimConfigRejectsBadInput(t *testing.T) {
	cfg := DefaultBrawlerConfig()
	cfg.Weapons[0].Kind = "laser"
	_, err := cfg.SimConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sword")

	cfg = DefaultBrawlerConfig()
	cfg.Enemies.Profiles[1].Type = "ghost"
	_, err = cfg.SimConfig()
	require.Error(t, err)

	cfg = DefaultBrawlerConfig()
	cfg.Levels = nil
	_, err = cfg.SimConfig()
	require.Error(t, err)
}

func TestLoadBrawlerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	_, err := LoadBrawler(path)
	require.Error(t, err, "missing file")

	require.NoError(t, os.WriteFile(path, []byte("player: [not, a, map]"), 0o644))
	_, err = LoadBrawler(path)
	require.Error(t, err, "bad yaml")

	require.NoError(t, os.WriteFile(path, []byte("player:\n  max_health: 42\n"), 0o644))
	cfg, err := LoadBrawler(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Player.MaxHealth)
	assert.Equal(t, DefaultBrawlerConfig().Levels, cfg.Levels, "unset keys keep their defaults")
}

func TestForeignConfigKeepsSnakePlayable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brawler.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player:\n  max_health: 42\n"), 0o644))

	cfg, err := LoadSnake(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSnakeConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestSnakeValidate(t *testing.T) {
	cfg := DefaultSnakeConfig()
	require.NoError(t, cfg.Validate())

	cfg.Speed.MinMS = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultSnakeConfig()
	cfg.Board.StartX = cfg.Board.Width
	assert.Error(t, cfg.Validate())
}

func TestLoadPrefersUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadSnake("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSnakeConfig(), cfg)

	userDir := filepath.Join(home, ".brawler", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "snake.yaml"), []byte("scoring:\n  per_food: 25\n"), 0o644))

	cfg, err = LoadSnake("")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Scoring.PerFood)
}

func TestApplyBrawlerPreset(t *testing.T) {
	cfg := DefaultBrawlerConfig()
	ApplyBrawlerPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 0.7, cfg.Difficulty.InitialLevel)
	assert.Equal(t, 75, cfg.Player.MaxHealth)

	cfg = DefaultBrawlerConfig()
	ApplyBrawlerPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 100, cfg.Player.MaxHealth)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("easy")
	require.NoError(t, err)
	assert.Equal(t, DifficultyEasy, p)

	_, err = ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestEmptyPresetKeepsConfig(t *testing.T) {
	cfg := DefaultBrawlerConfig()
	ApplyBrawlerPreset(&cfg, "")
	assert.Equal(t, DefaultBrawlerConfig(), cfg)
}
