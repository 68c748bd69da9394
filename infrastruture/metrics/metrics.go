// Package metrics exports prometheus counters for maze generation, searches
// and games.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "maze"

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	mazesGenerated *prometheus.CounterVec
	searches       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	pathLength     *prometheus.HistogramVec
	moves          *prometheus.CounterVec
	games          *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

// New creates a Metrics on a fresh registry with the Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		mazesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generated_total",
			Help:      "Mazes generated, by side length",
		}, []string{"size"}),
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Path searches by algorithm and result",
		}, []string{"algorithm", "result"}),
		searchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Path search duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 14), // 10us to ~80ms
		}, []string{"algorithm"}),
		pathLength: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length_steps",
			Help:      "Length of found paths in steps",
			Buckets:   []float64{4, 8, 16, 32, 64, 128, 256},
		}, []string{"algorithm"}),
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Player moves by outcome",
		}, []string{"outcome"}),
		games: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_total",
			Help:      "Game sessions by lifecycle event",
		}, []string{"event"}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently being played",
		}),
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) MazeGenerated(size string) {
	m.mazesGenerated.WithLabelValues(size).Inc()
}

// SearchCompleted records one pathfinder run. steps is ignored when found is false.
func (m *Metrics) SearchCompleted(algorithm string, found bool, steps int, took time.Duration) {
	result := "found"
	if !found {
		result = "unreachable"
	}
	m.searches.WithLabelValues(algorithm, result).Inc()
	m.searchDuration.WithLabelValues(algorithm).Observe(took.Seconds())
	if found {
		m.pathLength.WithLabelValues(algorithm).Observe(float64(steps))
	}
}

func (m *Metrics) Move(moved bool) {
	if moved {
		m.moves.WithLabelValues("moved").Inc()
		return
	}
	m.moves.WithLabelValues("blocked").Inc()
}

func (m *Metrics) GameStarted() {
	m.games.WithLabelValues("started").Inc()
	m.activeSessions.Inc()
}

func (m *Metrics) GameFinished() {
	m.games.WithLabelValues("finished").Inc()
	m.activeSessions.Dec()
}

func (m *Metrics) GameAbandoned() {
	m.games.WithLabelValues("abandoned").Inc()
	m.activeSessions.Dec()
}
