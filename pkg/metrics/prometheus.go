// Package metrics provides Prometheus metrics for the AFCON prediction service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Prediction metrics
	predictionsServed prometheus.Counter
	predictionErrors  prometheus.Counter
	predictionLatency prometheus.Histogram
	featureLatency    prometheus.Histogram
	unknownTeams      prometheus.Counter

	// Simulation metrics
	simulationsRun    prometheus.Counter
	fixturesEvaluated prometheus.Counter
	drawTieBreaks     prometheus.Counter
	undecidableTies   prometheus.Counter

	// Repository metrics
	repositoryMatches      prometheus.Gauge
	repositoryTeams        prometheus.Gauge
	repositoryQueryLatency prometheus.Histogram

	// Prediction cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "afcon",
		subsystem:        "predictor",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.predictionsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_served_total",
		Help:      "Total number of match predictions served",
	})

	m.predictionErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_errors_total",
		Help:      "Total number of failed prediction requests",
	})

	m.predictionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_latency_milliseconds",
		Help:      "End-to-end latency of a single prediction in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.featureLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feature_derivation_latency_milliseconds",
		Help:      "Latency of deriving one fixture feature vector in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.unknownTeams = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unknown_team_warnings_total",
		Help:      "Requests naming a team absent from every static table (served on defaults)",
	})

	m.simulationsRun = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulations_run_total",
		Help:      "Total number of tournament simulations completed",
	})

	m.fixturesEvaluated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fixtures_evaluated_total",
		Help:      "Total number of bracket fixtures resolved",
	})

	m.drawTieBreaks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "draw_tiebreaks_total",
		Help:      "Knockout draws forced to a winner by static ranking",
	})

	m.undecidableTies = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "undecidable_ties_total",
		Help:      "Knockout draws between equally ranked teams (surfaced as errors)",
	})

	m.repositoryMatches = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_matches",
		Help:      "Number of matches in the loaded historical snapshot",
	})

	m.repositoryTeams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_teams",
		Help:      "Number of distinct teams in the loaded historical snapshot",
	})

	m.repositoryQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_query_latency_milliseconds",
		Help:      "Latency of historical match queries in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_cache_hits_total",
		Help:      "Prediction cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_cache_misses_total",
		Help:      "Prediction cache misses",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordPredictionServed increments the served predictions counter.
func RecordPredictionServed() {
	globalManager.predictionsServed.Inc()
}

// RecordPredictionError increments the failed predictions counter.
func RecordPredictionError() {
	globalManager.predictionErrors.Inc()
}

// RecordPredictionLatency records end-to-end prediction latency in milliseconds.
func RecordPredictionLatency(latencyMs float64) {
	globalManager.predictionLatency.Observe(latencyMs)
}

// RecordFeatureLatency records feature derivation latency in milliseconds.
func RecordFeatureLatency(latencyMs float64) {
	globalManager.featureLatency.Observe(latencyMs)
}

// RecordUnknownTeam increments the unknown-team warning counter.
func RecordUnknownTeam() {
	globalManager.unknownTeams.Inc()
}

// RecordSimulationRun increments the completed simulations counter.
func RecordSimulationRun() {
	globalManager.simulationsRun.Inc()
}

// RecordFixtureEvaluated increments the resolved fixtures counter.
func RecordFixtureEvaluated() {
	globalManager.fixturesEvaluated.Inc()
}

// RecordDrawTieBreak increments the rank tie-break counter.
func RecordDrawTieBreak() {
	globalManager.drawTieBreaks.Inc()
}

// RecordUndecidableTie increments the undecidable tie counter.
func RecordUndecidableTie() {
	globalManager.undecidableTies.Inc()
}

// UpdateRepositoryMatches sets the loaded snapshot size.
func UpdateRepositoryMatches(count int) {
	globalManager.repositoryMatches.Set(float64(count))
}

// UpdateRepositoryTeams sets the distinct team count.
func UpdateRepositoryTeams(count int) {
	globalManager.repositoryTeams.Set(float64(count))
}

// RecordRepositoryQueryLatency records match query latency in milliseconds.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// RecordCacheHit increments the prediction cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the prediction cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom registry serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
