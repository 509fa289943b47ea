// Package sim is the real-time combat simulation behind the brawler:
// enemy waves, AI, projectiles, damage and the game-status state machine.
// It is UI-agnostic. Time only advances through Driver.Advance.
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// never is the "last happened" timestamp for something that has not happened yet.
const never int64 = math.MinInt64 / 2

// Facing is the horizontal direction an entity looks at.
type Facing uint8

const (
	FacingRight Facing = iota
	FacingLeft
)

// Sign returns +1 for right and -1 for left.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// MoveDir is a movement intent from the input layer.
type MoveDir int8

const (
	MoveNone  MoveDir = 0
	MoveLeft  MoveDir = -1
	MoveRight MoveDir = 1
)

// EnemyType tags an enemy variant. Per-type numbers live in Profiles.
type EnemyType uint8

const (
	EnemyNormal EnemyType = iota
	EnemyFast
	EnemyHeavy
)

func (t EnemyType) String() string {
	switch t {
	case EnemyNormal:
		return "normal"
	case EnemyFast:
		return "fast"
	case EnemyHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// ParseEnemyType converts a config name to an EnemyType.
func ParseEnemyType(name string) (EnemyType, error) {
	switch name {
	case "normal":
		return EnemyNormal, nil
	case "fast":
		return EnemyFast, nil
	case "heavy":
		return EnemyHeavy, nil
	}
	return 0, fmt.Errorf("sim: unknown enemy type %q", name)
}

// EnemyProfile is the constant data attached to an enemy type.
type EnemyProfile struct {
	Type        EnemyType
	Speed       float64 // units per second
	AttackRange float64 // horizontal distance
	Damage      int
}

// Profiles is the enemy lookup table. Order defines the random draw.
type Profiles []EnemyProfile

// DefaultProfiles returns the stock enemy roster.
func DefaultProfiles() Profiles {
	return Profiles{
		{Type: EnemyNormal, Speed: 1.0, AttackRange: 1.0, Damage: 10},
		{Type: EnemyFast, Speed: 1.8, AttackRange: 1.0, Damage: 10},
		{Type: EnemyHeavy, Speed: 0.6, AttackRange: 1.5, Damage: 20},
	}
}

// Lookup returns the profile for t. A missing type is a configuration bug.
func (p Profiles) Lookup(t EnemyType) EnemyProfile {
	for _, prof := range p {
		if prof.Type == t {
			return prof
		}
	}
	panic(fmt.Sprintf("sim: no profile for enemy type %s", t))
}

// EnemyState is the per-enemy behavior state.
type EnemyState uint8

const (
	EnemyIdle EnemyState = iota
	EnemyRun
	EnemyAttack
	EnemyDamaged
	EnemyDeath
)

func (s EnemyState) String() string {
	switch s {
	case EnemyIdle:
		return "idle"
	case EnemyRun:
		return "run"
	case EnemyAttack:
		return "attack"
	case EnemyDamaged:
		return "damaged"
	case EnemyDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Enemy is a single hostile. Values are copied, never shared between snapshots.
type Enemy struct {
	ID             string
	Pos            core.Vec3
	Health         int
	MaxHealth      int
	IsDead         bool
	Type           EnemyType
	Level          int // wave number at spawn
	State          EnemyState
	LastAttackTime int64
	ScoreValue     int
	DropChance     float64
	DiedAt         int64
}

// Owner says which side fired a projectile.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Projectile is a moving hit volume.
type Projectile struct {
	ID        string
	Owner     Owner
	Pos       core.Vec3
	Vel       core.Vec3 // units per second
	Damage    int
	Size      float64
	CreatedAt int64
	Lifespan  int64
	Active    bool
	Weapon    string
}

// Expired reports whether the projectile has outlived its lifespan at now.
func (p Projectile) Expired(now int64) bool {
	return now-p.CreatedAt >= p.Lifespan
}

// AnimState mirrors the player's combat intents for presentation.
type AnimState uint8

const (
	AnimIdle AnimState = iota
	AnimRun
	AnimAttack
	AnimDamaged
	AnimDeath
	AnimDash
	AnimSpecial
)

func (a AnimState) String() string {
	switch a {
	case AnimIdle:
		return "idle"
	case AnimRun:
		return "run"
	case AnimAttack:
		return "attack"
	case AnimDamaged:
		return "damaged"
	case AnimDeath:
		return "death"
	case AnimDash:
		return "dash"
	case AnimSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Player holds the singleton player vitals and pending intents.
type Player struct {
	Pos          core.Vec3
	Facing       Facing
	Health       int
	MaxHealth    int
	Energy       float64
	MaxEnergy    float64
	Anim         AnimState
	Invulnerable bool

	Weapon    int     // index into Config.Weapons
	LastFired []int64 // per weapon, parallel to Config.Weapons
	LastDash  int64

	// Intents recorded between ticks, consumed by Advance.
	MoveDir       MoveDir
	MoveUntil     int64
	DashUntil     int64
	AttackQueued  bool
	DashQueued    bool
	SpecialQueued bool
	SwitchQueued  bool
}

// PowerUpKind is what a pickup restores.
type PowerUpKind uint8

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpEnergy
)

func (k PowerUpKind) String() string {
	if k == PowerUpEnergy {
		return "energy"
	}
	return "health"
}

// PowerUp is a pickup dropped by a defeated enemy.
type PowerUp struct {
	ID        string
	Kind      PowerUpKind
	Pos       core.Vec3
	Value     int
	CreatedAt int64
}

// Status is the game-status state machine.
type Status uint8

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
	StatusLevelComplete
)

func (s Status) String() string {
	switch s {
	case StatusMenu:
		return "menu"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "gameOver"
	case StatusLevelComplete:
		return "levelComplete"
	default:
		return "unknown"
	}
}

// Level is one stage of the campaign.
type Level struct {
	ID        int // 1-based
	Name      string
	MaxWave   int
	Unlocked  bool
	Completed bool
}

// WaveState tracks the director's progress through the current level.
type WaveState struct {
	FirstPending bool
	FirstAt      int64
	LastSpawnAt  int64
	Spawned      int // enemies spawned for CurrentWave
	Defeated     int // of those, how many have died
	Countdown    bool
	CountdownEnd int64
}

// State is one immutable snapshot of the whole session.
// Once installed in a Store it must not be modified.
type State struct {
	Player       Player
	Enemies      []Enemy
	Projectiles  []Projectile
	PowerUps     []PowerUp
	Status       Status
	CurrentWave  int
	Wave         WaveState
	Score        int
	HighScore    int
	Levels       []Level
	CurrentLevel int // 1-based
	Elapsed      time.Duration
	Epoch        uint64
}

// Now returns the simulation clock in milliseconds.
func (s *State) Now() int64 {
	return s.Elapsed.Milliseconds()
}

// Alive counts enemies that are not dead.
func (s *State) Alive() int {
	n := 0
	for i := range s.Enemies {
		if !s.Enemies[i].IsDead {
			n++
		}
	}
	return n
}

// WaveProgress returns the fraction of the current wave defeated, in [0, 1].
func (s *State) WaveProgress() float64 {
	if s.Wave.Spawned == 0 {
		return 0
	}
	return core.ClampF(float64(s.Wave.Defeated)/float64(s.Wave.Spawned), 0, 1)
}

// Level returns the active level.
func (s *State) Level() Level {
	for _, l := range s.Levels {
		if l.ID == s.CurrentLevel {
			return l
		}
	}
	return Level{}
}

func (s *State) clone() *State {
	c := *s
	c.Enemies = append([]Enemy(nil), s.Enemies...)
	c.Projectiles = append([]Projectile(nil), s.Projectiles...)
	c.PowerUps = append([]PowerUp(nil), s.PowerUps...)
	c.Levels = append([]Level(nil), s.Levels...)
	c.Player.LastFired = append([]int64(nil), s.Player.LastFired...)
	return &c
}
