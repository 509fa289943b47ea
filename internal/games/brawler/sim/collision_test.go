package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

func TestBoxesOverlapSymmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b core.Vec3
		want bool
	}{
		{"same spot", core.Vec3{}, core.Vec3{}, true},
		{"touching on x", core.Vec3{X: 0}, core.Vec3{X: 1}, true},
		{"apart on x", core.Vec3{X: 0}, core.Vec3{X: 1.01}, false},
		{"height forgiveness", core.Vec3{Y: 0}, core.Vec3{Y: 2.3}, true},
		{"too high", core.Vec3{Y: 0}, core.Vec3{Y: 2.5}, false},
		{"depth forgiveness", core.Vec3{Z: 0}, core.Vec3{Z: 1.4}, true},
		{"too deep", core.Vec3{Z: 0}, core.Vec3{Z: 1.6}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BoxesOverlap(tc.a, PlayerBox, tc.b, EnemyBox))
			assert.Equal(t, tc.want, BoxesOverlap(tc.b, EnemyBox, tc.a, PlayerBox))
		})
	}
}

func TestMeleeRangeRequiresFacing(t *testing.T) {
	attacker := core.Vec3{X: 10, Y: 0.5}

	assert.True(t, IsInMeleeRange(attacker, FacingRight, core.Vec3{X: 12, Y: 0.5}))
	assert.False(t, IsInMeleeRange(attacker, FacingLeft, core.Vec3{X: 12, Y: 0.5}))
	assert.True(t, IsInMeleeRange(attacker, FacingLeft, core.Vec3{X: 8, Y: 0.5}))
	assert.False(t, IsInMeleeRange(attacker, FacingRight, core.Vec3{X: 8, Y: 0.5}))

	// level with the attacker never counts
	assert.False(t, IsInMeleeRange(attacker, FacingRight, attacker))
	assert.False(t, IsInMeleeRange(attacker, FacingLeft, attacker))

	// beyond reach
	assert.False(t, IsInMeleeRange(attacker, FacingRight, core.Vec3{X: 14, Y: 0.5}))
}

func TestPlayerCollidesIgnoresDead(t *testing.T) {
	enemies := []Enemy{{Pos: core.Vec3{X: 0.5}, IsDead: true}}
	assert.False(t, PlayerCollidesWithEnemies(core.Vec3{}, enemies))

	enemies = append(enemies, Enemy{Pos: core.Vec3{X: 0.5}})
	assert.True(t, PlayerCollidesWithEnemies(core.Vec3{}, enemies))
}
