// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultNotFound = "not_found"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Enrichment Metrics
	EventsEnriched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrich_events_total",
			Help: "Total number of events run through the classifier",
		},
		[]string{"result"}, // "enriched", "passthrough"
	)

	EnrichCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrich_cache_hits_total",
			Help: "Total number of memoized enrichment hits",
		},
	)

	EnrichCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrich_cache_misses_total",
			Help: "Total number of memoized enrichment misses",
		},
	)

	EnrichCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enrich_cache_entries",
			Help: "Current number of memoized enrichments",
		},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"mode"}, // "personalized", "trending", "nearby"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent scoring and ranking events",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
		[]string{"mode"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of results returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"mode"},
	)

	// Catalog Metrics
	CatalogEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_events",
			Help: "Current number of events in the catalog",
		},
	)

	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refreshes_total",
			Help: "Total number of catalog refreshes",
		},
		[]string{"result"},
	)

	CatalogRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_refresh_duration_seconds",
			Help:    "Duration of catalog refreshes in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CatalogLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_refresh_timestamp",
			Help: "Unix timestamp of last successful catalog refresh",
		},
	)

	// Event Source Metrics
	SourceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_requests_total",
			Help: "Total number of upstream event searches",
		},
		[]string{"source", "result"},
	)

	SourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_request_duration_seconds",
			Help:    "Duration of upstream event searches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	SourceEventsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_events_fetched_total",
			Help: "Total number of raw events returned by upstream sources",
		},
		[]string{"source"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Store Metrics
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of preference and interaction store operations",
		},
		[]string{"store", "operation", "result"},
	)

	// Event Bus Metrics
	EventBusPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventbus_messages_published_total",
			Help: "Total number of messages published to the event bus",
		},
		[]string{"topic"},
	)

	EventBusConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventbus_messages_consumed_total",
			Help: "Total number of messages handled from the event bus",
		},
		[]string{"topic", "result"},
	)

	EventBusDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventbus_messages_deduplicated_total",
			Help: "Total number of duplicate messages dropped",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one ranking pass
func RecordRecommendation(mode string, results int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(mode).Inc()
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(mode).Observe(float64(results))
}

// RecordCatalogRefresh records a catalog refresh and, on success, the new
// catalog size
func RecordCatalogRefresh(duration time.Duration, events int, err error) {
	CatalogRefreshDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogRefreshes.WithLabelValues(ResultError).Inc()
		return
	}
	CatalogRefreshes.WithLabelValues(ResultSuccess).Inc()
	CatalogEvents.Set(float64(events))
	CatalogLastRefresh.Set(float64(time.Now().Unix()))
}

// RecordSourceRequest records one upstream search
func RecordSourceRequest(source string, duration time.Duration, events int, err error) {
	SourceRequestDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		SourceRequests.WithLabelValues(source, ResultError).Inc()
		return
	}
	SourceRequests.WithLabelValues(source, ResultSuccess).Inc()
	SourceEventsFetched.WithLabelValues(source).Add(float64(events))
}

// RecordCircuitBreakerRequest records a call result through a breaker
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordCircuitBreakerTransition records a state change and updates the
// state gauge. States follow gobreaker's String() values.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecordStoreOperation records a store call. result is ResultSuccess,
// ResultError or ResultNotFound.
func RecordStoreOperation(store, operation, result string) {
	StoreOperations.WithLabelValues(store, operation, result).Inc()
}

// RecordEventPublish records a message published to topic
func RecordEventPublish(topic string) {
	EventBusPublished.WithLabelValues(topic).Inc()
}

// RecordEventConsume records a handled message
func RecordEventConsume(topic string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	EventBusConsumed.WithLabelValues(topic, result).Inc()
}

// RecordEventDeduplicated records a dropped duplicate message
func RecordEventDeduplicated() {
	EventBusDeduplicated.Inc()
}

// SetAppInfo publishes the build version
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}
