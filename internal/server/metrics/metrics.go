// Package metrics owns the Prometheus collectors of a pitlane server.
package metrics

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for auth counters.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeInvalid     = "invalid"
	OutcomeRateLimited = "rate_limited"
)

// Metrics holds all Prometheus metrics for the pitlane server
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	LoginAttemptsTotal *prometheus.CounterVec
	RegistrationsTotal *prometheus.CounterVec

	// Game metrics
	GameSessionsRecorded prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitlane_http_requests_total",
			Help: "Total number of HTTP requests processed by route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pitlane_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	loginAttemptsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitlane_login_attempts_total",
			Help: "Total number of login attempts by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	registrationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitlane_registrations_total",
			Help: "Total number of registration submissions by outcome",
		},
		[]string{"outcome"},
	)

	gameSessionsRecorded := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pitlane_game_sessions_recorded_total",
			Help: "Total number of game sessions uploaded through the API",
		},
	)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		httpRequestDuration,
		loginAttemptsTotal,
		registrationsTotal,
		gameSessionsRecorded,
	)

	return &Metrics{
		registry:             registry,
		HTTPRequestsTotal:    httpRequestsTotal,
		HTTPRequestDuration:  httpRequestDuration,
		LoginAttemptsTotal:   loginAttemptsTotal,
		RegistrationsTotal:   registrationsTotal,
		GameSessionsRecorded: gameSessionsRecorded,
	}
}

// WatchDB exports the connection pool statistics of db as go_sql_*
// series labelled db_name="pitlane". Call it once per handle.
func (m *Metrics) WatchDB(db *sql.DB) {
	m.registry.MustRegister(collectors.NewDBStatsCollector(db, "pitlane"))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records a finished HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordLogin records a login attempt. channel is "form" or "api".
func (m *Metrics) RecordLogin(channel, outcome string) {
	m.LoginAttemptsTotal.WithLabelValues(channel, outcome).Inc()
}

// RecordRegistration records a registration submission
func (m *Metrics) RecordRegistration(outcome string) {
	m.RegistrationsTotal.WithLabelValues(outcome).Inc()
}

// RecordGameSession counts an uploaded game session
func (m *Metrics) RecordGameSession() {
	m.GameSessionsRecorded.Inc()
}
