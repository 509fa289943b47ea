package sim

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// ApplyDamage returns e after taking dmg. killed is true only on the
// alive-to-dead edge, so score is credited at most once per enemy.
// Dead enemies are returned unchanged.
func ApplyDamage(e Enemy, dmg int, now int64) (Enemy, bool) {
	if e.IsDead || dmg <= 0 {
		return e, false
	}
	e.Health = core.Max(0, e.Health-dmg)
	if e.Health > 0 {
		e.State = EnemyDamaged
		return e, false
	}
	e.IsDead = true
	e.State = EnemyDeath
	e.DiedAt = now
	return e, true
}

// Hit records one damage application.
type Hit struct {
	EnemyID string
	Damage  int
	Pos     core.Vec3
	Killed  bool
	Score   int // credited on kill
}

// AdvanceProjectiles moves active projectiles and retires the expired ones.
// An expired projectile is deactivated where it stands.
func AdvanceProjectiles(projectiles []Projectile, now int64, dt time.Duration) []Projectile {
	out := make([]Projectile, len(projectiles))
	for i, p := range projectiles {
		if p.Active {
			if p.Expired(now) {
				p.Active = false
			} else {
				p.Pos = p.Pos.Add(p.Vel.Scale(dt.Seconds()))
			}
		}
		out[i] = p
	}
	return out
}

// PurgeInactive drops inactive projectiles. Running it twice is a no-op.
func PurgeInactive(projectiles []Projectile) []Projectile {
	out := make([]Projectile, 0, len(projectiles))
	for _, p := range projectiles {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// HitResult is the outcome of projectile resolution.
type HitResult struct {
	Projectiles []Projectile
	Enemies     []Enemy
	Hits        []Hit
	Score       int
}

// ResolveHits tests player projectiles against living enemies. Each
// projectile damages the first enemy it overlaps and is consumed.
// Several projectiles may strike the same enemy in one pass.
func ResolveHits(projectiles []Projectile, enemies []Enemy, now int64) HitResult {
	res := HitResult{
		Projectiles: append([]Projectile(nil), projectiles...),
		Enemies:     append([]Enemy(nil), enemies...),
	}

	for pi := range res.Projectiles {
		p := &res.Projectiles[pi]
		if !p.Active || p.Owner != OwnerPlayer || p.Expired(now) {
			continue
		}
		for ei := range res.Enemies {
			if res.Enemies[ei].IsDead {
				continue
			}
			if !BoxesOverlap(p.Pos, ProjectileBox, res.Enemies[ei].Pos, EnemyBox) {
				continue
			}

			var killed bool
			res.Enemies[ei], killed = ApplyDamage(res.Enemies[ei], p.Damage, now)
			hit := Hit{EnemyID: res.Enemies[ei].ID, Damage: p.Damage, Pos: res.Enemies[ei].Pos, Killed: killed}
			if killed {
				hit.Score = res.Enemies[ei].ScoreValue
				res.Score += hit.Score
			}
			res.Hits = append(res.Hits, hit)
			p.Active = false
			break
		}
	}
	return res
}

// ResolveEnemyFire tests enemy projectiles against the player and returns
// the updated roster and the total damage that landed.
func ResolveEnemyFire(projectiles []Projectile, player core.Vec3, now int64) ([]Projectile, int) {
	out := append([]Projectile(nil), projectiles...)
	total := 0
	for i := range out {
		p := &out[i]
		if !p.Active || p.Owner != OwnerEnemy || p.Expired(now) {
			continue
		}
		if BoxesOverlap(p.Pos, ProjectileBox, player, PlayerBox) {
			total += p.Damage
			p.Active = false
		}
	}
	return out, total
}

// MeleeResult is the outcome of a melee swing.
type MeleeResult struct {
	Enemies []Enemy
	Hits    []Hit
	Score   int
}

// HitIDs lists the enemies struck by the swing.
func (m MeleeResult) HitIDs() []string {
	ids := make([]string, len(m.Hits))
	for i, h := range m.Hits {
		ids[i] = h.EnemyID
	}
	return ids
}

// ResolveMelee damages every living enemy inside the swing zone.
func ResolveMelee(player core.Vec3, facing Facing, enemies []Enemy, damage int, now int64) MeleeResult {
	res := MeleeResult{Enemies: append([]Enemy(nil), enemies...)}
	for i := range res.Enemies {
		if res.Enemies[i].IsDead || !IsInMeleeRange(player, facing, res.Enemies[i].Pos) {
			continue
		}
		var killed bool
		res.Enemies[i], killed = ApplyDamage(res.Enemies[i], damage, now)
		hit := Hit{EnemyID: res.Enemies[i].ID, Damage: damage, Pos: res.Enemies[i].Pos, Killed: killed}
		if killed {
			hit.Score = res.Enemies[i].ScoreValue
			res.Score += hit.Score
		}
		res.Hits = append(res.Hits, hit)
	}
	return res
}

// ResolveBurst damages every living enemy within radius of center,
// regardless of facing.
func ResolveBurst(center core.Vec3, radius float64, enemies []Enemy, damage int, now int64) MeleeResult {
	res := MeleeResult{Enemies: append([]Enemy(nil), enemies...)}
	zone := core.Box{W: radius * 2, H: PlayerBox.H, D: PlayerBox.D * 1.5}
	for i := range res.Enemies {
		if res.Enemies[i].IsDead || !BoxesOverlap(center, zone, res.Enemies[i].Pos, EnemyBox) {
			continue
		}
		var killed bool
		res.Enemies[i], killed = ApplyDamage(res.Enemies[i], damage, now)
		hit := Hit{EnemyID: res.Enemies[i].ID, Damage: damage, Pos: res.Enemies[i].Pos, Killed: killed}
		if killed {
			hit.Score = res.Enemies[i].ScoreValue
			res.Score += hit.Score
		}
		res.Hits = append(res.Hits, hit)
	}
	return res
}

// PowerUpRules controls drops.
type PowerUpRules struct {
	HealthValue int
	EnergyValue int
	Lifetime    int64 // ms before an uncollected drop vanishes
}

// DefaultPowerUpRules returns the stock drop values.
func DefaultPowerUpRules() PowerUpRules {
	return PowerUpRules{HealthValue: 25, EnergyValue: 30, Lifetime: 15000}
}

// RollDrop decides whether a freshly killed enemy leaves a power-up.
func RollDrop(rng *rand.Rand, e Enemy, now int64, rules PowerUpRules) (PowerUp, bool) {
	if e.DropChance <= 0 || rng.Float64() >= e.DropChance {
		return PowerUp{}, false
	}
	pu := PowerUp{
		ID:        uuid.NewString(),
		Kind:      PowerUpHealth,
		Pos:       e.Pos,
		Value:     rules.HealthValue,
		CreatedAt: now,
	}
	if rng.Intn(2) == 1 {
		pu.Kind = PowerUpEnergy
		pu.Value = rules.EnergyValue
	}
	return pu, true
}

// CollectPowerUps splits the roster into what the player touches and what remains.
// Drops older than the lifetime are discarded.
func CollectPowerUps(player core.Vec3, powerups []PowerUp, now int64, rules PowerUpRules) (remaining, collected []PowerUp) {
	for _, pu := range powerups {
		switch {
		case BoxesOverlap(player, PlayerBox, pu.Pos, PowerUpBox):
			collected = append(collected, pu)
		case rules.Lifetime > 0 && now-pu.CreatedAt >= rules.Lifetime:
			// expired
		default:
			remaining = append(remaining, pu)
		}
	}
	return remaining, collected
}
