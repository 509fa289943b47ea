// Package config provides YAML-based game configuration loading and
// difficulty management for the brawler and its mini-games.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-brawler/internal/games/brawler/sim"
)

// BrawlerConfig contains all configuration for the brawler.
type BrawlerConfig struct {
	Player     BrawlerPlayer    `yaml:"player"`
	Dash       BrawlerDash      `yaml:"dash"`
	Special    BrawlerSpecial   `yaml:"special"`
	Enemies    BrawlerEnemies   `yaml:"enemies"`
	Waves      BrawlerWaves     `yaml:"waves"`
	PowerUps   BrawlerPowerUps  `yaml:"powerups"`
	Weapons    []WeaponConfig   `yaml:"weapons"`
	Levels     []LevelConfig    `yaml:"levels"`
	Timing     BrawlerTiming    `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BrawlerPlayer defines the player's vitals and movement.
type BrawlerPlayer struct {
	MaxHealth   int     `yaml:"max_health"`
	MaxEnergy   float64 `yaml:"max_energy"`
	EnergyRegen float64 `yaml:"energy_regen"` // per second
	MoveSpeed   float64 `yaml:"move_speed"`   // units per second
	MoveHoldMS  int64   `yaml:"move_hold_ms"` // how long one key press keeps walking
}

// BrawlerDash defines the dash move.
type BrawlerDash struct {
	Speed      float64 `yaml:"speed"`
	DurationMS int64   `yaml:"duration_ms"`
	Cost       float64 `yaml:"cost"`
	CooldownMS int64   `yaml:"cooldown_ms"`
}

// BrawlerSpecial defines the energy burst.
type BrawlerSpecial struct {
	Cost       float64 `yaml:"cost"`
	Damage     int     `yaml:"damage"`
	Radius     float64 `yaml:"radius"`
	DurationMS int64   `yaml:"duration_ms"`
}

// BrawlerEnemies defines the enemy roster and spawn layout.
type BrawlerEnemies struct {
	AttackCooldownMS int64           `yaml:"attack_cooldown_ms"`
	Health           int             `yaml:"health"`
	ScoreValue       int             `yaml:"score_value"`
	DropChance       float64         `yaml:"drop_chance"`
	MaxPerWave       int             `yaml:"max_per_wave"`
	SpawnDistance    float64         `yaml:"spawn_distance"`
	SpawnJitter      float64         `yaml:"spawn_jitter"`
	SpawnSpacing     float64         `yaml:"spawn_spacing"`
	SpawnHeight      float64         `yaml:"spawn_height"`
	Profiles         []ProfileConfig `yaml:"profiles"`
}

// ProfileConfig is one row of the enemy profile table.
type ProfileConfig struct {
	Type        string  `yaml:"type"` // normal, fast, heavy
	Speed       float64 `yaml:"speed"`
	AttackRange float64 `yaml:"attack_range"`
	Damage      int     `yaml:"damage"`
}

// BrawlerWaves defines the wave director's delays.
type BrawlerWaves struct {
	FirstDelayMS   int64 `yaml:"first_delay_ms"`
	MinInterWaveMS int64 `yaml:"min_inter_wave_ms"`
	CountdownMS    int64 `yaml:"countdown_ms"`
	CorpseTTLMS    int64 `yaml:"corpse_ttl_ms"`
}

// BrawlerPowerUps defines drop values.
type BrawlerPowerUps struct {
	Health     int   `yaml:"health"`
	Energy     int   `yaml:"energy"`
	LifetimeMS int64 `yaml:"lifetime_ms"`
}

// WeaponConfig is one entry of the arsenal.
type WeaponConfig struct {
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"` // melee, projectile, spread
	Damage     int     `yaml:"damage"`
	CooldownMS int64   `yaml:"cooldown_ms"`
	Speed      float64 `yaml:"speed,omitempty"`
	LifespanMS int64   `yaml:"lifespan_ms,omitempty"`
	Pellets    int     `yaml:"pellets,omitempty"`
	Spread     float64 `yaml:"spread,omitempty"`
}

// LevelConfig is one campaign level.
type LevelConfig struct {
	Name    string `yaml:"name"`
	MaxWave int    `yaml:"max_wave"`
}

// BrawlerTiming holds animation and frame timing.
type BrawlerTiming struct {
	DamagedAnimMS int64 `yaml:"damaged_anim_ms"`
	AttackAnimMS  int64 `yaml:"attack_anim_ms"`
	MaxFrameMS    int64 `yaml:"max_frame_ms"`
}

// SimConfig converts the YAML form into the simulation's tuning and
// validates it.
func (c BrawlerConfig) SimConfig() (sim.Config, error) {
	out := sim.Config{
		PlayerMaxHealth: c.Player.MaxHealth,
		PlayerMaxEnergy: c.Player.MaxEnergy,
		EnergyRegen:     c.Player.EnergyRegen,
		MoveSpeed:       c.Player.MoveSpeed,
		MoveHold:        c.Player.MoveHoldMS,
		EnemyCooldown:   c.Enemies.AttackCooldownMS,
		MaxFrameDelta:   time.Duration(c.Timing.MaxFrameMS) * time.Millisecond,
		Dash: sim.DashRules{
			Speed:    c.Dash.Speed,
			Duration: c.Dash.DurationMS,
			Cost:     c.Dash.Cost,
			Cooldown: c.Dash.CooldownMS,
		},
		Special: sim.SpecialRules{
			Cost:     c.Special.Cost,
			Damage:   c.Special.Damage,
			Radius:   c.Special.Radius,
			Duration: c.Special.DurationMS,
		},
		Waves: sim.WaveTiming{
			FirstDelay:   c.Waves.FirstDelayMS,
			MinInterWave: c.Waves.MinInterWaveMS,
			Countdown:    c.Waves.CountdownMS,
			CorpseTTL:    c.Waves.CorpseTTLMS,
		},
		Anim: sim.AnimTiming{
			Damaged: c.Timing.DamagedAnimMS,
			Attack:  c.Timing.AttackAnimMS,
		},
		Spawn: sim.SpawnRules{
			MaxPerWave:     c.Enemies.MaxPerWave,
			MinDistance:    c.Enemies.SpawnDistance,
			DistanceJitter: c.Enemies.SpawnJitter,
			Spacing:        c.Enemies.SpawnSpacing,
			Height:         c.Enemies.SpawnHeight,
			Health:         c.Enemies.Health,
			ScoreValue:     c.Enemies.ScoreValue,
			DropChance:     c.Enemies.DropChance,
		},
		PowerUps: sim.PowerUpRules{
			HealthValue: c.PowerUps.Health,
			EnergyValue: c.PowerUps.Energy,
			Lifetime:    c.PowerUps.LifetimeMS,
		},
	}

	for _, p := range c.Enemies.Profiles {
		typ, err := sim.ParseEnemyType(p.Type)
		if err != nil {
			return sim.Config{}, fmt.Errorf("enemy profile: %w", err)
		}
		out.Profiles = append(out.Profiles, sim.EnemyProfile{
			Type:        typ,
			Speed:       p.Speed,
			AttackRange: p.AttackRange,
			Damage:      p.Damage,
		})
	}

	for _, w := range c.Weapons {
		kind, err := sim.ParseWeaponKind(w.Kind)
		if err != nil {
			return sim.Config{}, fmt.Errorf("weapon %s: %w", w.Name, err)
		}
		out.Weapons = append(out.Weapons, sim.Weapon{
			Name:     w.Name,
			Kind:     kind,
			Damage:   w.Damage,
			Cooldown: w.CooldownMS,
			Speed:    w.Speed,
			Lifespan: w.LifespanMS,
			Pellets:  w.Pellets,
			Spread:   w.Spread,
		})
	}

	for _, l := range c.Levels {
		out.Levels = append(out.Levels, sim.LevelSpec{Name: l.Name, MaxWave: l.MaxWave})
	}

	if err := out.Validate(); err != nil {
		return sim.Config{}, err
	}
	return out, nil
}

// SnakeConfig contains all configuration for the Snake mini-game.
type SnakeConfig struct {
	Board   SnakeBoard   `yaml:"board"`
	Speed   SnakeSpeed   `yaml:"speed"`
	Scoring SnakeScoring `yaml:"scoring"`
}

// SnakeBoard defines the playfield and starting layout.
type SnakeBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	StartX int `yaml:"start_x"`
	StartY int `yaml:"start_y"`
	FoodX  int `yaml:"food_x"`
	FoodY  int `yaml:"food_y"`
}

// SnakeSpeed defines the movement interval and how it shrinks.
type SnakeSpeed struct {
	InitialMS int `yaml:"initial_ms"`
	StepMS    int `yaml:"step_ms"` // removed per food eaten
	MinMS     int `yaml:"min_ms"`
}

// SnakeScoring defines points.
type SnakeScoring struct {
	PerFood int `yaml:"per_food"`
}

// Validate rejects a board the snake cannot start on or a move interval
// that never elapses.
func (c SnakeConfig) Validate() error {
	b := c.Board
	switch {
	case b.Width <= 0 || b.Height <= 0:
		return fmt.Errorf("config: snake board must be positive, got %dx%d", b.Width, b.Height)
	case b.StartX < 0 || b.StartX >= b.Width || b.StartY < 0 || b.StartY >= b.Height:
		return fmt.Errorf("config: snake start (%d,%d) is off the board", b.StartX, b.StartY)
	case c.Speed.MinMS <= 0 || c.Speed.InitialMS < c.Speed.MinMS:
		return fmt.Errorf("config: snake speed needs 0 < min_ms <= initial_ms, got %d and %d", c.Speed.MinMS, c.Speed.InitialMS)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "wave", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Wave/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	HealthMultiplier float64 `yaml:"health_multiplier"` // Added to enemy health at max difficulty
	ScoreMultiplier  float64 `yaml:"score_multiplier"`  // Added to enemy score value at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
