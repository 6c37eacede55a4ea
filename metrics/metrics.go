// Package metrics exposes Prometheus instrumentation for the service, on
// a private registry rather than the global default (spec_full.md A8).
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every counter/histogram the service records.
type Metrics struct {
	registry *prometheus.Registry

	GamesCreated     *prometheus.CounterVec
	AdvanceDuration  prometheus.Histogram
	PlaysGenerated   *prometheus.CounterVec
	HTTPRequestDur   *prometheus.HistogramVec
}

// New constructs a Metrics bundle and registers every collector on a
// fresh, private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		GamesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scoreboard_games_created_total",
			Help: "Number of games created, by lifecycle phase at creation time.",
		}, []string{"state"}),
		AdvanceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoreboard_game_advance_seconds",
			Help:    "Wall time spent inside a single game advancement loop.",
			Buckets: prometheus.DefBuckets,
		}),
		PlaysGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scoreboard_plays_generated_total",
			Help: "Number of simulated plays generated, by play type.",
		}, []string{"play_type"}),
		HTTPRequestDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scoreboard_http_request_duration_seconds",
			Help:    "HTTP request latency, by method, path template, and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	reg.MustRegister(m.GamesCreated, m.AdvanceDuration, m.PlaysGenerated, m.HTTPRequestDur)
	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAdvance records how long a single repository advancement loop
// took. It satisfies simulation.MetricsSink.
func (m *Metrics) ObserveAdvance(d time.Duration) {
	m.AdvanceDuration.Observe(d.Seconds())
}

// RecordCreate counts a game creation by its initial lifecycle phase. It
// satisfies simulation.MetricsSink.
func (m *Metrics) RecordCreate(state string) {
	m.GamesCreated.WithLabelValues(state).Inc()
}

// RecordPlay counts a simulated play by its type. It satisfies
// simulation.MetricsSink.
func (m *Metrics) RecordPlay(playType string) {
	m.PlaysGenerated.WithLabelValues(playType).Inc()
}

// InstrumentHTTP wraps next, recording request latency per method/path
// template/status.
func (m *Metrics) InstrumentHTTP(pathTemplate string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.HTTPRequestDur.WithLabelValues(r.Method, pathTemplate, http.StatusText(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
