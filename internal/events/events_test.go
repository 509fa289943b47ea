package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe(4)
	b := bus.Subscribe(4)

	bus.Publish(Event{Kind: WaveStart, Wave: 2})

	for _, sub := range []*Subscription{a, b} {
		select {
		case evt := <-sub.Events():
			assert.Equal(t, WaveStart, evt.Kind)
			assert.Equal(t, 2, evt.Wave)
		default:
			t.Fatal("expected an event on every subscriber")
		}
	}
}

func TestBusDropsOldestWhenFull(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(2)

	bus.Publish(Event{Kind: EnemyHit, Amount: 1})
	bus.Publish(Event{Kind: EnemyHit, Amount: 2})
	bus.Publish(Event{Kind: EnemyHit, Amount: 3})

	require.Equal(t, uint64(1), bus.Dropped())

	first := <-sub.Events()
	second := <-sub.Events()
	assert.Equal(t, 2, first.Amount)
	assert.Equal(t, 3, second.Amount)
}

func TestSubscriptionClose(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(1)
	sub.Close()
	sub.Close()

	bus.Publish(Event{Kind: GameStart})
	assert.Empty(t, sub.Events())

	select {
	case <-sub.Done():
	default:
		t.Fatal("Done should be closed")
	}
}

func TestBusCloseIgnoresPublish(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(1)
	bus.Close()
	bus.Publish(Event{Kind: GameStart})

	assert.Empty(t, sub.Events())
	late := bus.Subscribe(1)
	<-late.Done()
}

func TestConsume(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []Kind
	done := make(chan struct{})
	go func() {
		Consume(ctx, sub, func(evt Event) {
			mu.Lock()
			got = append(got, evt.Kind)
			mu.Unlock()
		})
		close(done)
	}()

	bus.Publish(Event{Kind: EnemyDeath})
	bus.Publish(Event{Kind: LevelComplete})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	sub.Close()
	<-done
	assert.Equal(t, []Kind{EnemyDeath, LevelComplete}, got)
}
