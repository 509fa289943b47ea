package sim

import (
	"errors"
	"fmt"
	"time"
)

// DashRules controls the dash move.
type DashRules struct {
	Speed    float64 // units per second while dashing
	Duration int64   // ms of movement and invulnerability
	Cost     float64 // energy
	Cooldown int64   // ms
}

// SpecialRules controls the energy burst.
type SpecialRules struct {
	Cost     float64
	Damage   int
	Radius   float64
	Duration int64 // ms the special animation lasts
}

// WaveTiming holds the director's delays, all in ms.
type WaveTiming struct {
	FirstDelay   int64 // after startGame
	MinInterWave int64 // since the previous spawn before a countdown may start
	Countdown    int64 // wave-incoming to wave-start
	CorpseTTL    int64 // dead enemies linger this long for death effects
}

// AnimTiming holds how long transient player animations last, in ms.
type AnimTiming struct {
	Damaged int64
	Attack  int64
}

// LevelSpec is the static description of a level.
type LevelSpec struct {
	Name    string
	MaxWave int
}

// Config is everything the simulation needs to know up front.
type Config struct {
	PlayerMaxHealth int
	PlayerMaxEnergy float64
	EnergyRegen     float64 // per second
	MoveSpeed       float64 // units per second
	MoveHold        int64   // ms a single move intent keeps the player walking

	EnemyCooldown int64 // ms between enemy attacks
	MaxFrameDelta time.Duration

	Dash     DashRules
	Special  SpecialRules
	Waves    WaveTiming
	Anim     AnimTiming
	Profiles Profiles
	Spawn    SpawnRules
	PowerUps PowerUpRules
	Weapons  []Weapon
	Levels   []LevelSpec
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		PlayerMaxHealth: 100,
		PlayerMaxEnergy: 100,
		EnergyRegen:     8,
		MoveSpeed:       6,
		MoveHold:        150,
		EnemyCooldown:   1000,
		MaxFrameDelta:   100 * time.Millisecond,
		Dash:            DashRules{Speed: 20, Duration: 250, Cost: 20, Cooldown: 600},
		Special:         SpecialRules{Cost: 50, Damage: 60, Radius: 5, Duration: 800},
		Waves:           WaveTiming{FirstDelay: 4000, MinInterWave: 3000, Countdown: 3000, CorpseTTL: 2000},
		Anim:            AnimTiming{Damaged: 200, Attack: 300},
		Profiles:        DefaultProfiles(),
		Spawn:           DefaultSpawnRules(),
		PowerUps:        DefaultPowerUpRules(),
		Weapons:         DefaultWeapons(),
		Levels: []LevelSpec{
			{Name: "Neon Alley", MaxWave: 3},
			{Name: "Rust Docks", MaxWave: 5},
			{Name: "Sky Foundry", MaxWave: 8},
		},
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.PlayerMaxHealth <= 0 {
		errs = append(errs, errors.New("player max health must be positive"))
	}
	if c.Spawn.Health <= 0 {
		errs = append(errs, errors.New("enemy health must be positive"))
	}
	if c.Spawn.MaxPerWave <= 0 {
		errs = append(errs, errors.New("max enemies per wave must be positive"))
	}
	if len(c.Profiles) == 0 {
		errs = append(errs, errors.New("at least one enemy profile is required"))
	}
	if len(c.Weapons) == 0 {
		errs = append(errs, errors.New("at least one weapon is required"))
	}
	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("at least one level is required"))
	}
	for i, l := range c.Levels {
		if l.MaxWave < 1 {
			errs = append(errs, fmt.Errorf("level %d: max wave must be at least 1", i+1))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("sim: invalid config: %w", errors.Join(errs...))
	}
	return nil
}
