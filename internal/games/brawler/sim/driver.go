package sim

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/events"
)

// TickReport summarizes one Advance call.
type TickReport struct {
	Events []events.Event
	Hits   int
	Kills  int
	Status Status
}

func (r *TickReport) emit(evt events.Event) {
	r.Events = append(r.Events, evt)
}

// Scaler adjusts freshly spawned enemies for the run's difficulty.
type Scaler interface {
	ScaleEnemy(e Enemy, wave, score int) Enemy
}

// Driver runs the simulation. It owns the Store, the timed-effect queue
// and the RNG, and is meant to be called from a single goroutine.
type Driver struct {
	cfg     Config
	store   *Store
	rng     *rand.Rand
	effects EffectQueue
	pub     events.Publisher
	logger  *log.Logger
	scaler  Scaler
	epoch   uint64
}

// NewDriver creates a driver in the menu state. pub and logger may be nil.
func NewDriver(cfg Config, seed int64, pub events.Publisher, logger *log.Logger) *Driver {
	if pub == nil {
		pub = events.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	d := &Driver{
		cfg:    cfg,
		store:  NewStore(cfg),
		rng:    rand.New(rand.NewSource(seed)),
		pub:    pub,
		logger: logger,
	}
	d.epoch = d.store.Snapshot().Epoch
	return d
}

// SetScaler installs difficulty scaling for future waves. nil disables it.
func (d *Driver) SetScaler(s Scaler) {
	d.scaler = s
}

// Store exposes the state holder for reads and intents.
func (d *Driver) Store() *Store {
	return d.store
}

// Snapshot is shorthand for Store().Snapshot().
func (d *Driver) Snapshot() *State {
	return d.store.Snapshot()
}

// Config returns the tuning the driver runs with.
func (d *Driver) Config() Config {
	return d.cfg
}

// PendingEffects returns how many deferred effects are queued.
func (d *Driver) PendingEffects() int {
	return d.effects.Len()
}

// sync drops queued effects once the session epoch moves on.
func (d *Driver) sync() {
	epoch := d.store.Snapshot().Epoch
	if epoch == d.epoch {
		return
	}
	if n := d.effects.Cancel(); n > 0 {
		d.logger.Debug("cancelled pending effects", "count", n)
	}
	d.epoch = epoch
}

// StartGame begins a run and announces it.
func (d *Driver) StartGame() bool {
	ok := d.store.StartGame()
	d.sync()
	if ok {
		st := d.store.Snapshot()
		d.logger.Debug("game started", "level", st.CurrentLevel)
		d.pub.Publish(events.Event{Kind: events.GameStart, At: st.Now(), Level: st.CurrentLevel})
	}
	return ok
}

// PauseGame pauses and cancels every pending effect.
func (d *Driver) PauseGame() bool {
	ok := d.store.PauseGame()
	d.sync()
	return ok
}

// ResumeGame resumes a paused game.
func (d *Driver) ResumeGame() bool {
	ok := d.store.ResumeGame()
	d.sync()
	return ok
}

// TogglePause flips between playing and paused.
func (d *Driver) TogglePause() bool {
	ok := d.store.TogglePause()
	d.sync()
	return ok
}

// ResetGame returns to the menu.
func (d *Driver) ResetGame() bool {
	ok := d.store.ResetGame()
	d.sync()
	return ok
}

// NextLevel continues into the next level.
func (d *Driver) NextLevel() bool {
	ok := d.store.NextLevel()
	d.sync()
	if ok {
		st := d.store.Snapshot()
		d.pub.Publish(events.Event{Kind: events.GameStart, At: st.Now(), Level: st.CurrentLevel})
	}
	return ok
}

// Advance runs one tick of dt. Outside the playing status it does nothing.
// Deltas above MaxFrameDelta are clamped so a stalled frame cannot
// teleport enemies.
// Advance moves the simulation forward by dt. It does nothing unless a
// game is being played. dt is clamped to MaxFrameDelta.
func (d *Driver) Advance(dt time.Duration) TickReport {
	d.sync()

	if dt < 0 {
		dt = 0
	}
	if d.cfg.MaxFrameDelta > 0 && dt > d.cfg.MaxFrameDelta {
		dt = d.cfg.MaxFrameDelta
	}

	var rep TickReport
	d.store.update(func(st *State) bool {
		if st.Status != StatusPlaying {
			return false
		}
		st.Elapsed += dt
		now := st.Now()

		stages := []func(st *State, now int64, dt time.Duration, rep *TickReport){
			d.applyEffects,
			d.stepPlayer,
			d.stepEnemies,
			d.stepProjectiles,
			d.stepPowerUps,
			d.directWaves,
		}
		for _, stage := range stages {
			stage(st, now, dt, &rep)
			if st.Status != StatusPlaying {
				break
			}
		}
		return true
	})
	d.sync()

	for _, evt := range rep.Events {
		d.pub.Publish(evt)
	}
	rep.Status = d.store.Snapshot().Status
	return rep
}

func (d *Driver) schedule(st *State, at int64, kind EffectKind, anim AnimState) {
	d.effects.Schedule(Effect{FireAt: at, Token: st.Epoch, Kind: kind, Anim: anim})
}

func (d *Driver) applyEffects(st *State, now int64, _ time.Duration, rep *TickReport) {
	for _, e := range d.effects.Due(now, st.Epoch) {
		switch e.Kind {
		case EffectRevertAnim:
			if st.Player.Anim == e.Anim {
				st.Player.Anim = AnimIdle
			}
		case EffectEndInvulnerable:
			st.Player.Invulnerable = false
		case EffectSpawnWave:
			d.endCountdown(st, now, rep)
		}
		if st.Status != StatusPlaying {
			return
		}
	}
}

func (d *Driver) stepPlayer(st *State, now int64, dt time.Duration, rep *TickReport) {
	p := &st.Player
	secs := dt.Seconds()

	if p.SwitchQueued {
		p.SwitchQueued = false
		p.Weapon = (p.Weapon + 1) % len(d.cfg.Weapons)
	}

	walking := p.MoveDir != MoveNone && now <= p.MoveUntil
	if walking {
		p.Facing = FacingRight
		if p.MoveDir == MoveLeft {
			p.Facing = FacingLeft
		}
	} else {
		p.MoveDir = MoveNone
	}

	p.Energy = math.Min(p.MaxEnergy, p.Energy+d.cfg.EnergyRegen*secs)

	if p.DashQueued {
		p.DashQueued = false
		dash := d.cfg.Dash
		if now-p.LastDash >= dash.Cooldown && p.Energy >= dash.Cost {
			p.Energy -= dash.Cost
			p.LastDash = now
			p.DashUntil = now + dash.Duration
			p.Anim = AnimDash
			p.Invulnerable = true
			d.schedule(st, p.DashUntil, EffectRevertAnim, AnimDash)
			d.schedule(st, p.DashUntil, EffectEndInvulnerable, AnimIdle)
		}
	}

	if p.SpecialQueued {
		p.SpecialQueued = false
		sp := d.cfg.Special
		if p.Energy >= sp.Cost {
			p.Energy -= sp.Cost
			p.Anim = AnimSpecial
			d.schedule(st, now+sp.Duration, EffectRevertAnim, AnimSpecial)
			res := ResolveBurst(p.Pos, sp.Radius, st.Enemies, sp.Damage, now)
			st.Enemies = res.Enemies
			d.creditHits(st, res.Hits, now, "special", rep)
		}
	}

	if p.AttackQueued {
		p.AttackQueued = false
		d.fire(st, now, rep)
	}

	switch {
	case now < p.DashUntil:
		p.Pos.X += p.Facing.Sign() * d.cfg.Dash.Speed * secs
	case walking:
		p.Pos.X += float64(p.MoveDir) * d.cfg.MoveSpeed * secs
		if p.Anim == AnimIdle {
			p.Anim = AnimRun
		}
	default:
		if p.Anim == AnimRun {
			p.Anim = AnimIdle
		}
	}
}

func (d *Driver) fire(st *State, now int64, rep *TickReport) {
	p := &st.Player
	w := d.cfg.Weapons[p.Weapon]
	if !w.Ready(p.LastFired[p.Weapon], now) {
		rep.emit(events.Event{Kind: events.WeaponCooldown, At: now, Weapon: w.Name})
		return
	}
	p.LastFired[p.Weapon] = now
	p.Anim = AnimAttack
	d.schedule(st, now+d.cfg.Anim.Attack, EffectRevertAnim, AnimAttack)
	rep.emit(events.Event{Kind: events.WeaponFire, At: now, Weapon: w.Name, Pos: p.Pos})

	if w.Kind == WeaponMelee {
		res := ResolveMelee(p.Pos, p.Facing, st.Enemies, w.Damage, now)
		st.Enemies = res.Enemies
		d.creditHits(st, res.Hits, now, w.Name, rep)
		return
	}
	st.Projectiles = append(st.Projectiles, w.Fire(OwnerPlayer, p.Pos, p.Facing, now)...)
}

// creditHits books score, events and drops for damage already applied.
func (d *Driver) creditHits(st *State, hits []Hit, now int64, weapon string, rep *TickReport) {
	for _, h := range hits {
		rep.Hits++
		rep.emit(events.Event{Kind: events.EnemyHit, At: now, EnemyID: h.EnemyID, Amount: h.Damage, Weapon: weapon, Pos: h.Pos})
		if !h.Killed {
			continue
		}
		rep.Kills++
		st.Score += h.Score
		rep.emit(events.Event{Kind: events.EnemyDeath, At: now, EnemyID: h.EnemyID, Amount: h.Score, Wave: st.CurrentWave, Pos: h.Pos})

		if e, ok := findEnemy(st.Enemies, h.EnemyID); ok {
			if e.Level == st.CurrentWave {
				st.Wave.Defeated++
			}
			if pu, dropped := RollDrop(d.rng, e, now, d.cfg.PowerUps); dropped {
				st.PowerUps = append(st.PowerUps, pu)
			}
		}
	}
}

func findEnemy(enemies []Enemy, id string) (Enemy, bool) {
	for _, e := range enemies {
		if e.ID == id {
			return e, true
		}
	}
	return Enemy{}, false
}

// damagePlayer applies dmg unless the player is invulnerable.
func (d *Driver) damagePlayer(st *State, dmg int, now int64, rep *TickReport) {
	p := &st.Player
	if p.Invulnerable || p.Health <= 0 || dmg <= 0 {
		return
	}
	p.Health = core.Max(0, p.Health-dmg)
	rep.emit(events.Event{Kind: events.PlayerDamaged, At: now, Amount: dmg, Pos: p.Pos})

	if p.Health == 0 {
		gameOver(st)
		rep.emit(events.Event{Kind: events.PlayerDeath, At: now, Wave: st.CurrentWave, Amount: st.Score})
		d.logger.Debug("player died", "wave", st.CurrentWave, "score", st.Score)
		return
	}
	p.Anim = AnimDamaged
	d.schedule(st, now+d.cfg.Anim.Damaged, EffectRevertAnim, AnimDamaged)
}

func (d *Driver) stepEnemies(st *State, now int64, dt time.Duration, rep *TickReport) {
	ai := TickEnemies(st.Player.Pos, st.Enemies, now, dt, d.cfg.Profiles, d.cfg.EnemyCooldown)
	st.Enemies = ai.Enemies
	for _, a := range ai.Attacks {
		d.damagePlayer(st, a.Damage, now, rep)
		if st.Status != StatusPlaying {
			return
		}
	}
}

func (d *Driver) stepProjectiles(st *State, now int64, dt time.Duration, rep *TickReport) {
	st.Projectiles = AdvanceProjectiles(st.Projectiles, now, dt)

	hr := ResolveHits(st.Projectiles, st.Enemies, now)
	st.Projectiles = hr.Projectiles
	st.Enemies = hr.Enemies
	d.creditHits(st, hr.Hits, now, "", rep)

	var dmg int
	st.Projectiles, dmg = ResolveEnemyFire(st.Projectiles, st.Player.Pos, now)
	d.damagePlayer(st, dmg, now, rep)

	st.Projectiles = PurgeInactive(st.Projectiles)
}

func (d *Driver) stepPowerUps(st *State, now int64, _ time.Duration, rep *TickReport) {
	remaining, collected := CollectPowerUps(st.Player.Pos, st.PowerUps, now, d.cfg.PowerUps)
	st.PowerUps = remaining

	p := &st.Player
	for _, pu := range collected {
		switch pu.Kind {
		case PowerUpHealth:
			p.Health = core.Min(p.MaxHealth, p.Health+pu.Value)
		case PowerUpEnergy:
			p.Energy = math.Min(p.MaxEnergy, p.Energy+float64(pu.Value))
		}
		rep.emit(events.Event{Kind: events.PowerUp, At: now, Amount: pu.Value, Weapon: pu.Kind.String(), Pos: pu.Pos})
	}
}
