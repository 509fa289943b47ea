package sim

import "sort"

// EffectKind is a deferred state change.
type EffectKind uint8

const (
	// EffectRevertAnim returns the player to idle if still in Anim.
	EffectRevertAnim EffectKind = iota
	// EffectEndInvulnerable clears the player's invulnerability.
	EffectEndInvulnerable
	// EffectSpawnWave ends a wave countdown.
	EffectSpawnWave
)

// Effect is a one-shot change due at FireAt on the simulation clock.
// Token is the session epoch it was scheduled in.
type Effect struct {
	FireAt int64
	Token  uint64
	Kind   EffectKind
	Anim   AnimState
}

// EffectQueue holds pending effects ordered by fire time.
// Effects scheduled at the same time fire in scheduling order.
type EffectQueue struct {
	items []Effect
}

// Schedule adds e to the queue.
func (q *EffectQueue) Schedule(e Effect) {
	i := sort.Search(len(q.items), func(i int) bool {
		return q.items[i].FireAt > e.FireAt
	})
	q.items = append(q.items, Effect{})
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = e
}

// Due removes and returns every effect with FireAt <= now. Effects whose
// token differs from the current one belong to a superseded session and
// are dropped instead of returned.
func (q *EffectQueue) Due(now int64, token uint64) []Effect {
	n := 0
	for n < len(q.items) && q.items[n].FireAt <= now {
		n++
	}
	if n == 0 {
		return nil
	}

	due := make([]Effect, 0, n)
	for _, e := range q.items[:n] {
		if e.Token == token {
			due = append(due, e)
		}
	}
	q.items = append(q.items[:0], q.items[n:]...)
	return due
}

// Cancel drops every pending effect and returns how many there were.
func (q *EffectQueue) Cancel() int {
	n := len(q.items)
	q.items = q.items[:0]
	return n
}

// Len returns the number of pending effects.
func (q *EffectQueue) Len() int {
	return len(q.items)
}

// Pending reports whether an effect of kind k is queued for token.
func (q *EffectQueue) Pending(k EffectKind, token uint64) bool {
	for _, e := range q.items {
		if e.Kind == k && e.Token == token {
			return true
		}
	}
	return false
}
