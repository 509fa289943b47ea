package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-brawler/internal/events"
)

// Cue is a named sound.
type Cue int

const (
	CueHit Cue = iota
	CueKill
	CueHurt
	CueDeath
	CueFire
	CueEmpty
	CueWaveIncoming
	CueWaveStart
	CueLevelComplete
	CuePickup
)

// CueFor maps a game event to its sound.
func CueFor(evt events.Event) (Cue, bool) {
	switch evt.Kind {
	case events.EnemyHit:
		return CueHit, true
	case events.EnemyDeath:
		return CueKill, true
	case events.PlayerDamaged:
		return CueHurt, true
	case events.PlayerDeath:
		return CueDeath, true
	case events.WeaponFire:
		return CueFire, true
	case events.WeaponCooldown:
		return CueEmpty, true
	case events.WaveIncoming:
		return CueWaveIncoming, true
	case events.WaveStart:
		return CueWaveStart, true
	case events.LevelComplete:
		return CueLevelComplete, true
	case events.PowerUp:
		return CuePickup, true
	}
	return 0, false
}

// Streamer builds a fresh streamer for the cue.
func (c Cue) Streamer() beep.Streamer {
	switch c {
	case CueHit:
		return tone(660, 40*time.Millisecond, 0.25)
	case CueKill:
		return sequence(tone(440, 60*time.Millisecond, 0.3), tone(220, 120*time.Millisecond, 0.3))
	case CueHurt:
		return tone(140, 120*time.Millisecond, 0.35)
	case CueDeath:
		return sequence(
			tone(330, 150*time.Millisecond, 0.35),
			tone(220, 150*time.Millisecond, 0.35),
			tone(110, 400*time.Millisecond, 0.35),
		)
	case CueFire:
		return tone(990, 30*time.Millisecond, 0.15)
	case CueEmpty:
		return tone(90, 40*time.Millisecond, 0.1)
	case CueWaveIncoming:
		return sequence(tone(520, 80*time.Millisecond, 0.25), tone(520, 80*time.Millisecond, 0.25))
	case CueWaveStart:
		return tone(780, 200*time.Millisecond, 0.25)
	case CueLevelComplete:
		return sequence(
			tone(523, 120*time.Millisecond, 0.3),
			tone(659, 120*time.Millisecond, 0.3),
			tone(784, 300*time.Millisecond, 0.3),
		)
	case CuePickup:
		return sequence(tone(880, 50*time.Millisecond, 0.25), tone(1320, 80*time.Millisecond, 0.25))
	}
	return nil
}

func sequence(parts ...beep.Streamer) beep.Streamer {
	valid := parts[:0]
	for _, p := range parts {
		if p != nil {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	return beep.Seq(valid...)
}
