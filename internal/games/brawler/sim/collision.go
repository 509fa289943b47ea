package sim

import (
	"math"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// Collision volumes and reach.
var (
	PlayerBox     = core.Box{W: 1, H: 2, D: 1}
	EnemyBox      = core.Box{W: 1, H: 2, D: 1}
	ProjectileBox = core.Box{W: 0.5, H: 0.5, D: 0.5}
	PowerUpBox    = core.Box{W: 0.8, H: 0.8, D: 0.8}
)

// AttackRange is the forward reach of a melee swing.
const AttackRange = 3.0

// Forgiveness factors applied to the half-extent sums. Depth is the most
// lenient because the side-on camera compresses it.
const (
	heightForgiveness = 1.2
	depthForgiveness  = 1.5
)

// BoxesOverlap reports whether two centered boxes overlap on every axis.
func BoxesOverlap(posA core.Vec3, boxA core.Box, posB core.Vec3, boxB core.Box) bool {
	if math.Abs(posA.X-posB.X) > boxA.W/2+boxB.W/2 {
		return false
	}
	if math.Abs(posA.Y-posB.Y) > (boxA.H/2+boxB.H/2)*heightForgiveness {
		return false
	}
	return math.Abs(posA.Z-posB.Z) <= (boxA.D/2+boxB.D/2)*depthForgiveness
}

// IsInMeleeRange reports whether target stands inside the swing zone
// projected in front of the attacker. Targets behind, or level with,
// the attacker are never hit.
func IsInMeleeRange(attacker core.Vec3, facing Facing, target core.Vec3) bool {
	if facing == FacingRight && target.X <= attacker.X {
		return false
	}
	if facing == FacingLeft && target.X >= attacker.X {
		return false
	}

	zone := core.Box{W: AttackRange, H: PlayerBox.H, D: PlayerBox.D * 1.5}
	center := core.Vec3{X: attacker.X + facing.Sign()*AttackRange/2, Y: attacker.Y, Z: attacker.Z}
	return BoxesOverlap(center, zone, target, EnemyBox)
}

// PlayerCollidesWithEnemies reports body contact with any living enemy.
func PlayerCollidesWithEnemies(player core.Vec3, enemies []Enemy) bool {
	for i := range enemies {
		if enemies[i].IsDead {
			continue
		}
		if BoxesOverlap(player, PlayerBox, enemies[i].Pos, EnemyBox) {
			return true
		}
	}
	return false
}
