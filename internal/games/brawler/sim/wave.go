package sim

import (
	"time"

	"github.com/vovakirdan/tui-brawler/internal/events"
)

// directWaves is the wave director. It prunes old corpses, spawns the
// first wave once its delay passes, and starts the countdown to the next
// wave when the arena is clear.
func (d *Driver) directWaves(st *State, now int64, _ time.Duration, rep *TickReport) {
	st.Enemies = pruneCorpses(st.Enemies, now, d.cfg.Waves.CorpseTTL)

	w := &st.Wave
	if w.FirstPending {
		if now >= w.FirstAt {
			w.FirstPending = false
			d.spawn(st, st.CurrentWave, now, rep)
		}
		return
	}
	if w.Countdown || st.Alive() > 0 {
		return
	}
	if now-w.LastSpawnAt < d.cfg.Waves.MinInterWave {
		return
	}

	w.Countdown = true
	w.CountdownEnd = now + d.cfg.Waves.Countdown
	d.schedule(st, w.CountdownEnd, EffectSpawnWave, AnimIdle)
	rep.emit(events.Event{Kind: events.WaveIncoming, At: now, Wave: st.CurrentWave + 1, Level: st.CurrentLevel})
	d.logger.Debug("wave incoming", "wave", st.CurrentWave+1, "in_ms", d.cfg.Waves.Countdown)
}

// endCountdown runs when a wave countdown expires: either the level is
// finished or the next wave arrives.
func (d *Driver) endCountdown(st *State, now int64, rep *TickReport) {
	if !st.Wave.Countdown {
		return
	}
	st.Wave.Countdown = false

	next := st.CurrentWave + 1
	if next > st.Level().MaxWave {
		completeLevel(st)
		rep.emit(events.Event{Kind: events.LevelComplete, At: now, Level: st.CurrentLevel, Wave: st.CurrentWave, Amount: st.Score})
		d.logger.Debug("level complete", "level", st.CurrentLevel, "score", st.Score)
		return
	}
	st.CurrentWave = next
	d.spawn(st, next, now, rep)
}

func (d *Driver) spawn(st *State, wave int, now int64, rep *TickReport) {
	spawned := SpawnWave(d.rng, wave, st.Player.Pos, d.cfg.Profiles, d.cfg.Spawn)
	if d.scaler != nil {
		for i := range spawned {
			spawned[i] = d.scaler.ScaleEnemy(spawned[i], wave, st.Score)
		}
	}
	st.Enemies = append(st.Enemies, spawned...)
	st.Wave.Spawned = len(spawned)
	st.Wave.Defeated = 0
	st.Wave.LastSpawnAt = now
	rep.emit(events.Event{Kind: events.WaveStart, At: now, Wave: wave, Level: st.CurrentLevel, Amount: len(spawned)})
	d.logger.Debug("wave start", "wave", wave, "enemies", len(spawned))
}

// pruneCorpses removes enemies that have been dead for at least ttl ms.
// A non-positive ttl keeps every corpse.
func pruneCorpses(enemies []Enemy, now, ttl int64) []Enemy {
	if ttl <= 0 {
		return enemies
	}
	out := enemies[:0:0]
	for _, e := range enemies {
		if e.IsDead && now-e.DiedAt >= ttl {
			continue
		}
		out = append(out, e)
	}
	return out
}
