package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBrawler loads the brawler configuration.
// Search order: customPath -> ~/.brawler/configs/brawler.yaml -> ./configs/brawler.yaml -> embedded default
func LoadBrawler(customPath string) (BrawlerConfig, error) {
	return load(customPath, "brawler.yaml", defaultBrawlerYAML, DefaultBrawlerConfig)
}

// LoadSnake loads the Snake configuration.
// Search order: customPath -> ~/.brawler/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load(customPath, "snake.yaml", defaultSnakeYAML, DefaultSnakeConfig)
}

func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	// Try custom path first. Files overlay the defaults, so a partial
	// file only changes the keys it sets.
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath, fallback); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", filename), fallback); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	var cfg T
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func tryLoad[T any](path string, fallback func() T) (T, bool) {
	cfg := fallback()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brawler", "configs", filename)
}

// ApplyBrawlerPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config as loaded.
func ApplyBrawlerPreset(cfg *BrawlerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth = 150
		cfg.Enemies.AttackCooldownMS = 1300
	case DifficultyHard:
		cfg.Player.MaxHealth = 75
		cfg.Enemies.AttackCooldownMS = 800
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.InitialMS = 200
		cfg.Speed.MinMS = 80
	case DifficultyHard:
		cfg.Speed.InitialMS = 110
		cfg.Speed.MinMS = 40
	}
}
