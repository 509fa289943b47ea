// Package metrics exports game activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-brawler/internal/events"
)

const namespace = "brawler"

// Collector turns bus events into counters.
type Collector struct {
	reg prometheus.Gatherer

	events    *prometheus.CounterVec
	kills     prometheus.Counter
	damage    prometheus.Counter
	shots     *prometheus.CounterVec
	waves     prometheus.Counter
	levels    prometheus.Counter
	dropped   prometheus.Counter
	sessions  prometheus.Gauge
	highWave  prometheus.Gauge
	maxWave   atomic.Int64
	lastDrops uint64
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		reg: reg,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Game events observed, by kind.",
		}, []string{"kind"}),
		kills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enemy_kills_total",
			Help:      "Enemies defeated.",
		}),
		damage: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_damage_total",
			Help:      "Damage taken by players.",
		}),
		shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weapon_fired_total",
			Help:      "Attacks made, by weapon.",
		}, []string{"weapon"}),
		waves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waves_started_total",
			Help:      "Waves spawned.",
		}),
		levels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_completed_total",
			Help:      "Levels completed.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events dropped by slow subscribers.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Connected SSH sessions.",
		}),
		highWave: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "highest_wave",
			Help:      "Highest wave reached since start.",
		}),
	}
	reg.MustRegister(c.events, c.kills, c.damage, c.shots, c.waves, c.levels, c.dropped, c.sessions, c.highWave)
	return c
}

// Observe records one event.
func (c *Collector) Observe(evt events.Event) {
	c.events.WithLabelValues(string(evt.Kind)).Inc()

	switch evt.Kind {
	case events.EnemyDeath:
		c.kills.Inc()
	case events.PlayerDamaged:
		c.damage.Add(float64(evt.Amount))
	case events.WeaponFire:
		c.shots.WithLabelValues(evt.Weapon).Inc()
	case events.WaveStart:
		c.waves.Inc()
		c.observeWave(evt.Wave)
	case events.LevelComplete:
		c.levels.Inc()
	}
}

func (c *Collector) observeWave(wave int) {
	for {
		cur := c.maxWave.Load()
		if int64(wave) <= cur {
			return
		}
		if c.maxWave.CompareAndSwap(cur, int64(wave)) {
			c.highWave.Set(float64(wave))
			return
		}
	}
}

// SessionStarted increments the live session gauge.
func (c *Collector) SessionStarted() { c.sessions.Inc() }

// SessionEnded decrements the live session gauge.
func (c *Collector) SessionEnded() { c.sessions.Dec() }

// Run subscribes to bus and records events until ctx is done. Drop counts
// from the bus are synced once a second.
func (c *Collector) Run(ctx context.Context, bus *events.Bus) {
	sub := bus.Subscribe(256)
	defer sub.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt, ok := <-sub.Events():
			if !ok {
				return
			}
			c.Observe(evt)
		case <-ticker.C:
			c.syncDropped(bus.Dropped())
		case <-sub.Done():
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Collector) syncDropped(total uint64) {
	if total > c.lastDrops {
		c.dropped.Add(float64(total - c.lastDrops))
	}
	c.lastDrops = total
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// StartHTTP serves /metrics on addr until ctx is done. It does not block.
func (c *Collector) StartHTTP(ctx context.Context, addr string, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("metrics available", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
