package sim

import (
	"sync/atomic"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// Store owns the authoritative game state. Every change builds a fresh
// State and installs it atomically, so Snapshot never observes a torn
// update. There is a single writer (the tick loop); readers may be on
// any goroutine.
type Store struct {
	cfg Config
	cur atomic.Pointer[State]
}

// NewStore creates a store in the menu with the first level unlocked.
func NewStore(cfg Config) *Store {
	st := &State{
		Status:       StatusMenu,
		CurrentLevel: 1,
		CurrentWave:  1,
	}
	for i, spec := range cfg.Levels {
		st.Levels = append(st.Levels, Level{
			ID:       i + 1,
			Name:     spec.Name,
			MaxWave:  spec.MaxWave,
			Unlocked: i == 0,
		})
	}
	st.Player = freshPlayer(cfg)

	s := &Store{cfg: cfg}
	s.cur.Store(st)
	return s
}

// Snapshot returns the current state. Callers must treat it as read-only.
func (s *Store) Snapshot() *State {
	return s.cur.Load()
}

// update applies fn to a copy of the current state and installs it if fn
// returns true.
func (s *Store) update(fn func(st *State) bool) bool {
	next := s.cur.Load().clone()
	if !fn(next) {
		return false
	}
	s.cur.Store(next)
	return true
}

func freshPlayer(cfg Config) Player {
	lastFired := make([]int64, len(cfg.Weapons))
	for i := range lastFired {
		lastFired[i] = never
	}
	return Player{
		Pos:       core.Vec3{X: 0, Y: cfg.Spawn.Height, Z: 0},
		Facing:    FacingRight,
		Health:    cfg.PlayerMaxHealth,
		MaxHealth: cfg.PlayerMaxHealth,
		Energy:    cfg.PlayerMaxEnergy,
		MaxEnergy: cfg.PlayerMaxEnergy,
		Anim:      AnimIdle,
		LastFired: lastFired,
		LastDash:  never,
	}
}

// setStatus moves to a new status, invalidating every effect scheduled
// under the previous epoch and settling transient player state.
func setStatus(st *State, status Status) {
	st.Status = status
	st.Epoch++

	p := &st.Player
	if p.Anim != AnimDeath {
		p.Anim = AnimIdle
	}
	p.Invulnerable = false
	p.MoveDir = MoveNone
	p.MoveUntil = 0
	p.DashUntil = 0
	p.AttackQueued = false
	p.DashQueued = false
	p.SpecialQueued = false
	p.SwitchQueued = false
	st.Wave.Countdown = false
}

// beginLevel resets the arena for level id and enters playing.
func (s *Store) beginLevel(st *State, id int) {
	now := st.Now()
	st.Player = freshPlayer(s.cfg)
	st.Enemies = nil
	st.Projectiles = nil
	st.PowerUps = nil
	st.CurrentLevel = id
	st.CurrentWave = 1
	st.Wave = WaveState{
		FirstPending: true,
		FirstAt:      now + s.cfg.Waves.FirstDelay,
		LastSpawnAt:  now,
	}
	setStatus(st, StatusPlaying)
}

// SetHighScore seeds the high score, typically from persistent storage.
// The high score never decreases.
func (s *Store) SetHighScore(v int) {
	s.update(func(st *State) bool {
		if v <= st.HighScore {
			return false
		}
		st.HighScore = v
		return true
	})
}

// StartGame begins a fresh run at the selected level.
func (s *Store) StartGame() bool {
	return s.update(func(st *State) bool {
		if st.Status == StatusPlaying {
			return false
		}
		st.Score = 0
		s.beginLevel(st, st.CurrentLevel)
		return true
	})
}

// PauseGame freezes a running game.
func (s *Store) PauseGame() bool {
	return s.update(func(st *State) bool {
		if st.Status != StatusPlaying {
			return false
		}
		setStatus(st, StatusPaused)
		return true
	})
}

// ResumeGame continues a paused game.
func (s *Store) ResumeGame() bool {
	return s.update(func(st *State) bool {
		if st.Status != StatusPaused {
			return false
		}
		setStatus(st, StatusPlaying)
		return true
	})
}

// TogglePause flips between playing and paused.
func (s *Store) TogglePause() bool {
	switch s.Snapshot().Status {
	case StatusPlaying:
		return s.PauseGame()
	case StatusPaused:
		return s.ResumeGame()
	}
	return false
}

// ResetGame commits the score to the high score and returns to the menu.
func (s *Store) ResetGame() bool {
	return s.update(func(st *State) bool {
		if st.Status == StatusMenu {
			return false
		}
		st.HighScore = core.Max(st.HighScore, st.Score)
		st.Score = 0
		st.Enemies = nil
		st.Projectiles = nil
		st.PowerUps = nil
		st.Player = freshPlayer(s.cfg)
		setStatus(st, StatusMenu)
		return true
	})
}

// NextLevel continues from a completed level into the next unlocked one.
// Score carries over. Returns false if there is no next level.
func (s *Store) NextLevel() bool {
	return s.update(func(st *State) bool {
		if st.Status != StatusLevelComplete {
			return false
		}
		next := st.CurrentLevel + 1
		if next > len(st.Levels) || !st.Levels[next-1].Unlocked {
			return false
		}
		s.beginLevel(st, next)
		return true
	})
}

// SelectLevel picks the level StartGame will use. Only unlocked levels
// can be chosen, and only from the menu.
func (s *Store) SelectLevel(id int) bool {
	return s.update(func(st *State) bool {
		if st.Status != StatusMenu || id < 1 || id > len(st.Levels) || !st.Levels[id-1].Unlocked {
			return false
		}
		st.CurrentLevel = id
		return true
	})
}

// MovePlayer records a movement intent. MoveNone stops the player.
func (s *Store) MovePlayer(dir MoveDir) bool {
	return s.update(func(st *State) bool {
		if st.Status != StatusPlaying {
			return false
		}
		st.Player.MoveDir = dir
		st.Player.MoveUntil = 0
		if dir != MoveNone {
			st.Player.MoveUntil = st.Now() + s.cfg.MoveHold
		}
		return true
	})
}

// TriggerAttack queues an attack with the equipped weapon.
func (s *Store) TriggerAttack() bool {
	return s.queue(func(p *Player) { p.AttackQueued = true })
}

// TriggerDash queues a dash in the facing direction.
func (s *Store) TriggerDash() bool {
	return s.queue(func(p *Player) { p.DashQueued = true })
}

// TriggerSpecial queues the energy burst.
func (s *Store) TriggerSpecial() bool {
	return s.queue(func(p *Player) { p.SpecialQueued = true })
}

// CycleWeapon queues a switch to the next weapon.
func (s *Store) CycleWeapon() bool {
	return s.queue(func(p *Player) { p.SwitchQueued = true })
}

func (s *Store) queue(set func(p *Player)) bool {
	return s.update(func(st *State) bool {
		if st.Status != StatusPlaying || st.Player.Health <= 0 {
			return false
		}
		set(&st.Player)
		return true
	})
}

// gameOver ends the run after the player's death.
func gameOver(st *State) {
	st.Player.Anim = AnimDeath
	st.HighScore = core.Max(st.HighScore, st.Score)
	setStatus(st, StatusGameOver)
}

// completeLevel marks the current level done and unlocks the next one.
func completeLevel(st *State) {
	for i := range st.Levels {
		switch st.Levels[i].ID {
		case st.CurrentLevel:
			st.Levels[i].Completed = true
		case st.CurrentLevel + 1:
			st.Levels[i].Unlocked = true
		}
	}
	setStatus(st, StatusLevelComplete)
}

// UnlockThrough unlocks every level up to and including id. It is used
// to carry campaign progress into a fresh store and only works from the
// menu.
func (s *Store) UnlockThrough(id int) bool {
	return s.update(func(st *State) bool {
		if st.Status != StatusMenu {
			return false
		}
		changed := false
		for i := range st.Levels {
			if st.Levels[i].ID <= id && !st.Levels[i].Unlocked {
				st.Levels[i].Unlocked = true
				changed = true
			}
		}
		return changed
	})
}
