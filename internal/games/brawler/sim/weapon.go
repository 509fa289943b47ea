package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// WeaponKind selects how a weapon delivers damage.
type WeaponKind uint8

const (
	WeaponMelee WeaponKind = iota
	WeaponProjectile
	WeaponSpread
)

func (k WeaponKind) String() string {
	switch k {
	case WeaponMelee:
		return "melee"
	case WeaponProjectile:
		return "projectile"
	case WeaponSpread:
		return "spread"
	default:
		return "unknown"
	}
}

// ParseWeaponKind converts a config name to a WeaponKind.
func ParseWeaponKind(name string) (WeaponKind, error) {
	switch name {
	case "melee":
		return WeaponMelee, nil
	case "projectile":
		return WeaponProjectile, nil
	case "spread":
		return WeaponSpread, nil
	}
	return 0, fmt.Errorf("sim: unknown weapon kind %q", name)
}

// Weapon describes one entry of the player's arsenal.
type Weapon struct {
	Name     string
	Kind     WeaponKind
	Damage   int
	Cooldown int64 // ms

	Speed    float64 // projectile units per second
	Lifespan int64   // projectile ms
	Pellets  int     // spread only
	Spread   float64 // radians between pellets
}

// DefaultWeapons returns the stock arsenal. The first entry is equipped at start.
func DefaultWeapons() []Weapon {
	return []Weapon{
		{Name: "sword", Kind: WeaponMelee, Damage: 34, Cooldown: 300},
		{Name: "blaster", Kind: WeaponProjectile, Damage: 25, Cooldown: 400, Speed: 15, Lifespan: 2000},
		{Name: "shotgun", Kind: WeaponSpread, Damage: 60, Cooldown: 900, Speed: 12, Lifespan: 800, Pellets: 5, Spread: 0.3},
		{Name: "plasma", Kind: WeaponProjectile, Damage: 50, Cooldown: 1200, Speed: 10, Lifespan: 2500},
	}
}

// Ready reports whether the cooldown since lastFired has elapsed.
func (w Weapon) Ready(lastFired, now int64) bool {
	return now-lastFired >= w.Cooldown
}

// Muzzle offset from the shooter's position.
const (
	muzzleForward = 0.8
	muzzleHeight  = 1.0
)

// Fire builds the projectiles for one trigger pull. Melee weapons return nil.
func (w Weapon) Fire(owner Owner, pos core.Vec3, facing Facing, now int64) []Projectile {
	origin := core.Vec3{X: pos.X + facing.Sign()*muzzleForward, Y: pos.Y + muzzleHeight, Z: pos.Z}

	switch w.Kind {
	case WeaponProjectile:
		return []Projectile{w.projectile(owner, origin, core.Vec3{X: w.Speed * facing.Sign()}, w.Damage, now)}
	case WeaponSpread:
		n := core.Max(1, w.Pellets)
		dmg := core.Max(1, w.Damage/n)
		out := make([]Projectile, 0, n)
		for i := range n {
			angle := (float64(i) - float64(n-1)/2) * w.Spread
			vel := core.Vec3{
				X: math.Cos(angle) * w.Speed * facing.Sign(),
				Y: math.Sin(angle) * w.Speed * 0.5,
			}
			out = append(out, w.projectile(owner, origin, vel, dmg, now))
		}
		return out
	default:
		return nil
	}
}

func (w Weapon) projectile(owner Owner, origin, vel core.Vec3, dmg int, now int64) Projectile {
	return Projectile{
		ID:        uuid.NewString(),
		Owner:     owner,
		Pos:       origin,
		Vel:       vel,
		Damage:    dmg,
		Size:      ProjectileBox.W,
		CreatedAt: now,
		Lifespan:  w.Lifespan,
		Active:    true,
		Weapon:    w.Name,
	}
}
