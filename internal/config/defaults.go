package config

import (
	_ "embed"
)

//go:embed defaults/brawler.yaml
var defaultBrawlerYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultBrawlerConfig returns the default brawler configuration.
func DefaultBrawlerConfig() BrawlerConfig {
	return BrawlerConfig{
		Player: BrawlerPlayer{
			MaxHealth:   100,
			MaxEnergy:   100,
			EnergyRegen: 8,
			MoveSpeed:   6,
			MoveHoldMS:  150,
		},
		Dash: BrawlerDash{
			Speed:      20,
			DurationMS: 250,
			Cost:       20,
			CooldownMS: 600,
		},
		Special: BrawlerSpecial{
			Cost:       50,
			Damage:     60,
			Radius:     5,
			DurationMS: 800,
		},
		Enemies: BrawlerEnemies{
			AttackCooldownMS: 1000,
			Health:           100,
			ScoreValue:       100,
			DropChance:       0.2,
			MaxPerWave:       10,
			SpawnDistance:    15,
			SpawnJitter:      5,
			SpawnSpacing:     2,
			SpawnHeight:      0.5,
			Profiles: []ProfileConfig{
				{Type: "normal", Speed: 1.0, AttackRange: 1.0, Damage: 10},
				{Type: "fast", Speed: 1.8, AttackRange: 1.0, Damage: 10},
				{Type: "heavy", Speed: 0.6, AttackRange: 1.5, Damage: 20},
			},
		},
		Waves: BrawlerWaves{
			FirstDelayMS:   4000,
			MinInterWaveMS: 3000,
			CountdownMS:    3000,
			CorpseTTLMS:    2000,
		},
		PowerUps: BrawlerPowerUps{
			Health:     25,
			Energy:     30,
			LifetimeMS: 15000,
		},
		Weapons: []WeaponConfig{
			{Name: "sword", Kind: "melee", Damage: 34, CooldownMS: 300},
			{Name: "blaster", Kind: "projectile", Damage: 25, CooldownMS: 400, Speed: 15, LifespanMS: 2000},
			{Name: "shotgun", Kind: "spread", Damage: 60, CooldownMS: 900, Speed: 12, LifespanMS: 800, Pellets: 5, Spread: 0.3},
			{Name: "plasma", Kind: "projectile", Damage: 50, CooldownMS: 1200, Speed: 10, LifespanMS: 2500},
		},
		Levels: []LevelConfig{
			{Name: "Neon Alley", MaxWave: 3},
			{Name: "Rust Docks", MaxWave: 5},
			{Name: "Sky Foundry", MaxWave: 8},
		},
		Timing: BrawlerTiming{
			DamagedAnimMS: 200,
			AttackAnimMS:  300,
			MaxFrameMS:    100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "wave",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				HealthMultiplier: 1.0,
				ScoreMultiplier:  0.5,
			},
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: SnakeBoard{
			Width:  30,
			Height: 20,
			StartX: 10,
			StartY: 10,
			FoodX:  15,
			FoodY:  10,
		},
		Speed: SnakeSpeed{
			InitialMS: 150,
			StepMS:    5,
			MinMS:     50,
		},
		Scoring: SnakeScoring{
			PerFood: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "brawler":
		return defaultBrawlerYAML
	case "snake":
		return defaultSnakeYAML
	default:
		return nil
	}
}
