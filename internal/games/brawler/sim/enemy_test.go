package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

func TestWaveCount(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 3, 5: 6, 9: 10, 10: 10, 50: 10}
	for wave, want := range cases {
		assert.Equal(t, want, WaveCount(wave, 10), "wave %d", wave)
	}
}

func TestSpawnWaveLayout(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	player := core.Vec3{X: 3, Y: 0.5, Z: 2}
	rules := DefaultSpawnRules()

	enemies := SpawnWave(rng, 4, player, DefaultProfiles(), rules)
	require.Len(t, enemies, 5)

	seen := make(map[string]bool)
	for i, e := range enemies {
		assert.False(t, seen[e.ID], "duplicate id")
		seen[e.ID] = true

		minX := player.X + rules.MinDistance + float64(i)*rules.Spacing
		assert.GreaterOrEqual(t, e.Pos.X, minX)
		assert.Less(t, e.Pos.X, minX+rules.DistanceJitter)
		assert.Equal(t, player.Z, e.Pos.Z)
		assert.Equal(t, rules.Height, e.Pos.Y)
		assert.Equal(t, 4, e.Level)
		assert.Equal(t, 100, e.Health)
		assert.Equal(t, EnemyIdle, e.State)
		assert.False(t, e.IsDead)
	}
}

func TestSpawnWaveDeterministicLayout(t *testing.T) {
	a := SpawnWave(rand.New(rand.NewSource(99)), 6, core.Vec3{}, DefaultProfiles(), DefaultSpawnRules())
	b := SpawnWave(rand.New(rand.NewSource(99)), 6, core.Vec3{}, DefaultProfiles(), DefaultSpawnRules())
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Pos, b[i].Pos)
		assert.Equal(t, a[i].Type, b[i].Type)
	}
}

func TestTickEnemiesDoesNotMutateInput(t *testing.T) {
	enemies := []Enemy{
		{ID: "a", Pos: core.Vec3{X: 10}, Health: 100, LastAttackTime: never},
		{ID: "b", Pos: core.Vec3{X: 0.5}, Health: 100, LastAttackTime: never},
	}
	before := append([]Enemy(nil), enemies...)

	res := TickEnemies(core.Vec3{}, enemies, 0, 100*time.Millisecond, DefaultProfiles(), 1000)

	assert.Equal(t, before, enemies)
	assert.Less(t, res.Enemies[0].Pos.X, 10.0)
	assert.Equal(t, EnemyRun, res.Enemies[0].State)
	assert.Equal(t, EnemyAttack, res.Enemies[1].State)
	require.Len(t, res.Attacks, 1)
	assert.Equal(t, "b", res.Attacks[0].EnemyID)
	assert.Equal(t, 10, res.Attacks[0].Damage)
}

func TestTickEnemiesNeverOvershoots(t *testing.T) {
	enemies := []Enemy{
		{ID: "right", Pos: core.Vec3{X: 10}, Type: EnemyFast},
		{ID: "left", Pos: core.Vec3{X: -10}, Type: EnemyHeavy},
	}
	res := TickEnemies(core.Vec3{}, enemies, 0, time.Hour, DefaultProfiles(), 1000)

	assert.Equal(t, 0.0, res.Enemies[0].Pos.X)
	assert.Equal(t, 0.0, res.Enemies[1].Pos.X)
}

func TestTickEnemiesCooldown(t *testing.T) {
	enemies := []Enemy{{ID: "e", Pos: core.Vec3{X: 0.5}, LastAttackTime: never}}
	profiles := DefaultProfiles()

	res := TickEnemies(core.Vec3{}, enemies, 1000, 0, profiles, 1000)
	require.Len(t, res.Attacks, 1)
	assert.Equal(t, int64(1000), res.Enemies[0].LastAttackTime)

	res = TickEnemies(core.Vec3{}, res.Enemies, 1999, 0, profiles, 1000)
	assert.Empty(t, res.Attacks)
	assert.Equal(t, EnemyIdle, res.Enemies[0].State)

	res = TickEnemies(core.Vec3{}, res.Enemies, 2000, 0, profiles, 1000)
	assert.Len(t, res.Attacks, 1)
}

func TestTickEnemiesCopiesDeadThrough(t *testing.T) {
	dead := Enemy{ID: "d", Pos: core.Vec3{X: 5}, IsDead: true, State: EnemyDeath}
	res := TickEnemies(core.Vec3{}, []Enemy{dead}, 0, time.Second, DefaultProfiles(), 1000)
	assert.Equal(t, dead, res.Enemies[0])
	assert.Empty(t, res.Attacks)
}
