package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// SpawnRules controls how a wave is laid out and what each enemy is worth.
type SpawnRules struct {
	MaxPerWave     int
	MinDistance    float64 // from the player, along +X
	DistanceJitter float64 // added uniformly in [0, jitter)
	Spacing        float64 // extra offset per enemy index
	Height         float64 // spawn Y
	Health         int
	ScoreValue     int
	DropChance     float64
}

// DefaultSpawnRules returns the stock spawn layout.
func DefaultSpawnRules() SpawnRules {
	return SpawnRules{
		MaxPerWave:     10,
		MinDistance:    15,
		DistanceJitter: 5,
		Spacing:        2,
		Height:         0.5,
		Health:         100,
		ScoreValue:     100,
		DropChance:     0.2,
	}
}

// WaveCount returns how many enemies wave n brings.
// Wave 1 is always a single enemy.
func WaveCount(wave, maxPerWave int) int {
	if wave <= 1 {
		return 1
	}
	return core.Min(wave+1, maxPerWave)
}

// SpawnWave builds the enemies for a wave to the right of the player.
// The caller appends the result to its roster.
func SpawnWave(rng *rand.Rand, wave int, player core.Vec3, profiles Profiles, rules SpawnRules) []Enemy {
	count := WaveCount(wave, rules.MaxPerWave)
	enemies := make([]Enemy, 0, count)

	for i := range count {
		x := player.X + rules.MinDistance + rng.Float64()*rules.DistanceJitter + float64(i)*rules.Spacing
		prof := profiles[rng.Intn(len(profiles))]

		enemies = append(enemies, Enemy{
			ID:             uuid.NewString(),
			Pos:            core.Vec3{X: x, Y: rules.Height, Z: player.Z},
			Health:         rules.Health,
			MaxHealth:      rules.Health,
			Type:           prof.Type,
			Level:          wave,
			State:          EnemyIdle,
			LastAttackTime: never,
			ScoreValue:     rules.ScoreValue,
			DropChance:     rules.DropChance,
			DiedAt:         never,
		})
	}
	return enemies
}

// Attack is a hit landed on the player by an enemy this tick.
type Attack struct {
	EnemyID string
	Damage  int
	Pos     core.Vec3
}

// AITick is the outcome of one AI pass.
type AITick struct {
	Enemies []Enemy
	Attacks []Attack
}

// TickEnemies advances every living enemy toward the player and resolves
// their melee attacks. The input slice is not modified.
func TickEnemies(player core.Vec3, enemies []Enemy, now int64, dt time.Duration, profiles Profiles, cooldown int64) AITick {
	out := AITick{Enemies: make([]Enemy, len(enemies))}

	for i, e := range enemies {
		if e.IsDead {
			out.Enemies[i] = e
			continue
		}

		prof := profiles.Lookup(e.Type)
		dx := player.X - e.Pos.X
		dist := math.Abs(dx)

		switch {
		case dist <= prof.AttackRange && now-e.LastAttackTime >= cooldown:
			e.State = EnemyAttack
			e.LastAttackTime = now
			out.Attacks = append(out.Attacks, Attack{EnemyID: e.ID, Damage: prof.Damage, Pos: e.Pos})
		case dist <= prof.AttackRange:
			if e.State == EnemyAttack || e.State == EnemyDamaged || e.State == EnemyRun {
				e.State = EnemyIdle
			}
		default:
			e.State = EnemyRun
			step := math.Min(prof.Speed*dt.Seconds(), dist)
			e.Pos.X += math.Copysign(step, dx)
		}

		out.Enemies[i] = e
	}
	return out
}
