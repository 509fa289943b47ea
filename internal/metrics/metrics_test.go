package metrics

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-brawler/internal/events"
)

func TestObserveCountsEvents(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.Observe(events.Event{Kind: events.EnemyDeath})
	c.Observe(events.Event{Kind: events.EnemyDeath})
	c.Observe(events.Event{Kind: events.PlayerDamaged, Amount: 20})
	c.Observe(events.Event{Kind: events.WeaponFire, Weapon: "sword"})
	c.Observe(events.Event{Kind: events.WaveStart, Wave: 3})
	c.Observe(events.Event{Kind: events.WaveStart, Wave: 2})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.kills))
	assert.Equal(t, 20.0, testutil.ToFloat64(c.damage))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.shots.WithLabelValues("sword")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.waves))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.highWave))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.events.WithLabelValues(string(events.EnemyDeath))))
}

func TestSessionsGauge(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.SessionStarted()
	c.SessionStarted()
	c.SessionEnded()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sessions))
}

func TestSyncDroppedAddsDelta(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.syncDropped(3)
	c.syncDropped(5)
	c.syncDropped(5)
	assert.Equal(t, 5.0, testutil.ToFloat64(c.dropped))
}

func TestRunConsumesBus(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	bus := events.NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		c.Run(ctx, bus)
		close(done)
	}()

	// wait for the subscription before publishing
	require.Eventually(t, func() bool {
		bus.Publish(events.Event{Kind: events.LevelComplete})
		return testutil.ToFloat64(c.levels) > 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.Observe(events.Event{Kind: events.EnemyDeath})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "brawler_enemy_kills_total 1"), body)
}
