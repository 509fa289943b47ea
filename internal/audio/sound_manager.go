// Package audio plays short synthesized cues for game events.
// When no audio device is available the manager stays silent.
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-brawler/internal/events"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager owns the speaker and mixes cues into it.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a silent manager. Call Initialize to open the
// audio device.
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. A failure is not fatal: the manager
// keeps working as a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// SetMuted silences or unsilences future cues.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Enabled reports whether cues will actually be heard.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play mixes one cue into the output.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := c.Streamer()
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Listen plays the cue for every event on sub until ctx is done or the
// subscription closes.
func (sm *SoundManager) Listen(ctx context.Context, sub *events.Subscription) {
	events.Consume(ctx, sub, func(evt events.Event) {
		if c, ok := CueFor(evt); ok {
			sm.Play(c)
		}
	})
}

// tone is a sine note of fixed length shaped by a linear fade out.
func tone(freq float64, d time.Duration, volume float64) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return newFade(beep.Take(sampleRate.N(d), sine), sampleRate.N(d), volume)
}

type fade struct {
	streamer beep.Streamer
	total    int
	pos      int
	volume   float64
}

func newFade(s beep.Streamer, total int, volume float64) *fade {
	return &fade{streamer: s, total: max(1, total), volume: volume}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := f.volume * (1 - float64(f.pos)/float64(f.total))
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }
