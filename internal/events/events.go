// Package events fans gameplay notifications out to sound, metrics and
// other presentation collaborators. Publishing never blocks the simulation.
package events

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// Kind names a discrete gameplay event.
type Kind string

const (
	EnemyHit       Kind = "enemy-hit"
	EnemyDeath     Kind = "enemy-death"
	PlayerDamaged  Kind = "player-damaged"
	PlayerDeath    Kind = "player-death"
	WaveIncoming   Kind = "wave-incoming"
	WaveStart      Kind = "wave-start"
	LevelComplete  Kind = "level-complete"
	WeaponFire     Kind = "weapon-fire"
	WeaponCooldown Kind = "weapon-cooldown"
	PowerUp        Kind = "powerup"
	GameStart      Kind = "game-start"
)

// Event is a fire-and-forget notification emitted at a state transition.
type Event struct {
	Kind Kind
	At   int64 // simulation clock, ms

	EnemyID string
	Amount  int // damage dealt, score awarded or pickup value
	Wave    int
	Level   int
	Weapon  string
	Pos     core.Vec3
}

// Publisher is what the simulation depends on.
type Publisher interface {
	Publish(evt Event)
}

// Discard is a Publisher that drops everything.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}

// Bus delivers events to every subscriber through buffered channels.
// Safe for concurrent use.
type Bus struct {
	mu      sync.RWMutex
	subs    map[*Subscription]struct{}
	dropped atomic.Uint64
	closed  bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscription is a single consumer's view of the bus.
type Subscription struct {
	bus      *Bus
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// Subscribe registers a consumer. bufferSize controls how many events can
// queue before the oldest ones are dropped.
func (b *Bus) Subscribe(bufferSize int) *Subscription {
	if bufferSize < 1 {
		bufferSize = 64
	}
	sub := &Subscription{
		bus:    b,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		sub.doneOnce.Do(func() { close(sub.done) })
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Publish sends evt to all subscribers without blocking.
// If a subscriber's buffer is full, its oldest event is dropped.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for sub := range b.subs {
		if !sub.send(evt) {
			b.dropped.Add(1)
		}
	}
}

// Dropped returns how many events were lost to full buffers.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Close detaches every subscriber. Further publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[*Subscription]struct{})
	b.closed = true
	b.mu.Unlock()

	for sub := range subs {
		sub.doneOnce.Do(func() { close(sub.done) })
	}
}

// send reports false if an older event had to be dropped or the new one was lost.
func (s *Subscription) send(evt Event) bool {
	select {
	case <-s.done:
		return true
	default:
	}

	select {
	case s.events <- evt:
		return true
	default:
	}

	// Buffer full, drop oldest and retry once
	select {
	case <-s.events:
	default:
	}
	select {
	case s.events <- evt:
	default:
	}
	return false
}

// Events returns the channel to receive events from.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Done closes when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close unsubscribes. Safe to call multiple times.
func (s *Subscription) Close() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s)
	s.bus.mu.Unlock()
	s.doneOnce.Do(func() { close(s.done) })
}

// Consume calls fn for every event until ctx is cancelled or the
// subscription ends.
func Consume(ctx context.Context, sub *Subscription, fn func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done():
			return
		case evt := <-sub.Events():
			fn(evt)
		}
	}
}
