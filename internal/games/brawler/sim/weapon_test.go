package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

func weaponByName(t *testing.T, name string) Weapon {
	t.Helper()
	for _, w := range DefaultWeapons() {
		if w.Name == name {
			return w
		}
	}
	t.Fatalf("no weapon %q", name)
	return Weapon{}
}

func TestWeaponReady(t *testing.T) {
	w := weaponByName(t, "sword")
	assert.True(t, w.Ready(never, 0))
	assert.False(t, w.Ready(100, 399))
	assert.True(t, w.Ready(100, 400))
}

func TestMeleeFiresNothing(t *testing.T) {
	assert.Nil(t, weaponByName(t, "sword").Fire(OwnerPlayer, core.Vec3{}, FacingRight, 0))
}

func TestBlasterFiresForward(t *testing.T) {
	w := weaponByName(t, "blaster")

	right := w.Fire(OwnerPlayer, core.Vec3{X: 1}, FacingRight, 50)
	require.Len(t, right, 1)
	assert.Greater(t, right[0].Vel.X, 0.0)
	assert.Greater(t, right[0].Pos.X, 1.0)
	assert.Equal(t, int64(50), right[0].CreatedAt)
	assert.True(t, right[0].Active)

	left := w.Fire(OwnerPlayer, core.Vec3{X: 1}, FacingLeft, 50)
	require.Len(t, left, 1)
	assert.Less(t, left[0].Vel.X, 0.0)
}

func TestShotgunSpread(t *testing.T) {
	w := weaponByName(t, "shotgun")
	pellets := w.Fire(OwnerPlayer, core.Vec3{}, FacingRight, 0)
	require.Len(t, pellets, w.Pellets)

	ids := make(map[string]bool)
	for _, p := range pellets {
		assert.Equal(t, w.Damage/w.Pellets, p.Damage)
		assert.Greater(t, p.Vel.X, 0.0)
		ids[p.ID] = true
	}
	assert.Len(t, ids, w.Pellets)

	// symmetric fan around the horizontal
	assert.InDelta(t, 0, pellets[w.Pellets/2].Vel.Y, 1e-9)
	assert.InDelta(t, -pellets[0].Vel.Y, pellets[w.Pellets-1].Vel.Y, 1e-9)
}
