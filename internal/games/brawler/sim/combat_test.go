package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

func TestApplyDamageKillsOnce(t *testing.T) {
	e := Enemy{ID: "e", Health: 30, MaxHealth: 100, DiedAt: never}

	e, killed := ApplyDamage(e, 10, 5)
	assert.False(t, killed)
	assert.Equal(t, 20, e.Health)
	assert.Equal(t, EnemyDamaged, e.State)

	e, killed = ApplyDamage(e, 50, 6)
	assert.True(t, killed)
	assert.Equal(t, 0, e.Health)
	assert.True(t, e.IsDead)
	assert.Equal(t, int64(6), e.DiedAt)

	e, killed = ApplyDamage(e, 50, 7)
	assert.False(t, killed)
	assert.Equal(t, int64(6), e.DiedAt)
}

func TestMeleeSwingsUntilDead(t *testing.T) {
	player := core.Vec3{X: 0, Y: 0.5}
	enemies := []Enemy{{ID: "e", Pos: core.Vec3{X: 2, Y: 0.5}, Health: 100, MaxHealth: 100, ScoreValue: 100}}

	score := 0
	wantHealth := []int{66, 32, 0}
	for i, want := range wantHealth {
		res := ResolveMelee(player, FacingRight, enemies, 34, int64(i))
		require.Len(t, res.Hits, 1)
		enemies = res.Enemies
		score += res.Score
		assert.Equal(t, want, enemies[0].Health)
	}
	assert.True(t, enemies[0].IsDead)

	res := ResolveMelee(player, FacingRight, enemies, 34, 10)
	assert.Empty(t, res.Hits)
	score += res.Score
	assert.Equal(t, 100, score)
}

func TestMeleeMissesBehind(t *testing.T) {
	enemies := []Enemy{{ID: "e", Pos: core.Vec3{X: -2}, Health: 100}}
	res := ResolveMelee(core.Vec3{}, FacingRight, enemies, 34, 0)
	assert.Empty(t, res.HitIDs())
	assert.Equal(t, 100, res.Enemies[0].Health)
}

func TestExpiredProjectileIsInert(t *testing.T) {
	p := Projectile{
		ID:        "p",
		Owner:     OwnerPlayer,
		Pos:       core.Vec3{X: 5},
		Vel:       core.Vec3{X: 1},
		Damage:    25,
		CreatedAt: 0,
		Lifespan:  2000,
		Active:    true,
	}

	moved := AdvanceProjectiles([]Projectile{p}, 1000, 100*time.Millisecond)
	assert.True(t, moved[0].Active)
	assert.InDelta(t, 5.1, moved[0].Pos.X, 1e-9)

	expired := AdvanceProjectiles([]Projectile{p}, 2001, 100*time.Millisecond)
	assert.False(t, expired[0].Active)
	assert.Equal(t, p.Pos, expired[0].Pos)

	// still active in the roster but past its lifespan: never hits
	enemies := []Enemy{{ID: "e", Pos: core.Vec3{X: 5}, Health: 100}}
	res := ResolveHits([]Projectile{p}, enemies, 2001)
	assert.Empty(t, res.Hits)
	assert.Equal(t, 100, res.Enemies[0].Health)
}

func TestResolveHitsFirstHitWins(t *testing.T) {
	proj := Projectile{ID: "p", Owner: OwnerPlayer, Damage: 25, Lifespan: 1000, Active: true}
	enemies := []Enemy{
		{ID: "a", Health: 100},
		{ID: "b", Health: 100},
	}

	res := ResolveHits([]Projectile{proj}, enemies, 0)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "a", res.Hits[0].EnemyID)
	assert.Equal(t, 75, res.Enemies[0].Health)
	assert.Equal(t, 100, res.Enemies[1].Health)
	assert.False(t, res.Projectiles[0].Active)

	// the input roster is untouched
	assert.True(t, proj.Active)
	assert.Equal(t, 100, enemies[0].Health)
}

func TestResolveHitsStacksOnOneEnemy(t *testing.T) {
	p := Projectile{Owner: OwnerPlayer, Damage: 60, Lifespan: 1000, Active: true}
	enemies := []Enemy{{ID: "a", Health: 100, ScoreValue: 100}}

	res := ResolveHits([]Projectile{p, p, p}, enemies, 0)
	require.Len(t, res.Hits, 2)
	assert.True(t, res.Hits[1].Killed)
	assert.Equal(t, 100, res.Score)
	// the third projectile had nothing left to hit
	assert.True(t, res.Projectiles[2].Active)
}

func TestResolveHitsIgnoresEnemyProjectiles(t *testing.T) {
	p := Projectile{Owner: OwnerEnemy, Damage: 60, Lifespan: 1000, Active: true}
	res := ResolveHits([]Projectile{p}, []Enemy{{ID: "a", Health: 100}}, 0)
	assert.Empty(t, res.Hits)

	projs, dmg := ResolveEnemyFire([]Projectile{p}, core.Vec3{}, 0)
	assert.Equal(t, 60, dmg)
	assert.False(t, projs[0].Active)
}

func TestPurgeInactiveIdempotent(t *testing.T) {
	projs := []Projectile{{ID: "a", Active: true}, {ID: "b"}, {ID: "c", Active: true}}
	once := PurgeInactive(projs)
	twice := PurgeInactive(once)

	require.Len(t, once, 2)
	assert.Equal(t, once, twice)
}

func TestResolveBurstHitsBothSides(t *testing.T) {
	enemies := []Enemy{
		{ID: "l", Pos: core.Vec3{X: -3}, Health: 100},
		{ID: "r", Pos: core.Vec3{X: 3}, Health: 100},
		{ID: "far", Pos: core.Vec3{X: 20}, Health: 100},
	}
	res := ResolveBurst(core.Vec3{}, 5, enemies, 60, 0)
	assert.ElementsMatch(t, []string{"l", "r"}, res.HitIDs())
}

func TestPowerUpLifecycle(t *testing.T) {
	rules := DefaultPowerUpRules()
	rng := rand.New(rand.NewSource(1))

	_, ok := RollDrop(rng, Enemy{DropChance: 0}, 0, rules)
	assert.False(t, ok)

	pu, ok := RollDrop(rng, Enemy{Pos: core.Vec3{X: 4}, DropChance: 1}, 100, rules)
	require.True(t, ok)
	assert.Equal(t, core.Vec3{X: 4}, pu.Pos)
	assert.NotEmpty(t, pu.ID)

	remaining, got := CollectPowerUps(core.Vec3{}, []PowerUp{pu}, 200, rules)
	assert.Empty(t, got)
	assert.Len(t, remaining, 1)

	remaining, got = CollectPowerUps(core.Vec3{X: 4}, []PowerUp{pu}, 200, rules)
	assert.Len(t, got, 1)
	assert.Empty(t, remaining)

	remaining, got = CollectPowerUps(core.Vec3{}, []PowerUp{pu}, 100+rules.Lifetime, rules)
	assert.Empty(t, got)
	assert.Empty(t, remaining)
}
