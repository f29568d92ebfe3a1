// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto at
package initialization and exposed by the API server at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Enrichment Metrics:
  - enrich_events_total: Classifier runs (counter)
    Labels: result (enriched, passthrough)
  - enrich_cache_hits_total / enrich_cache_misses_total (counter)
  - enrich_cache_entries: Memoized enrichments (gauge)

Recommendation Metrics:
  - recommendation_requests_total, recommendation_duration_seconds,
    recommendation_results
    Labels: mode (personalized, trending, nearby)

Catalog and Source Metrics:
  - catalog_events, catalog_refreshes_total, catalog_refresh_duration_seconds,
    catalog_last_refresh_timestamp
  - source_requests_total, source_request_duration_seconds,
    source_events_fetched_total
    Labels: source

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total, circuit_breaker_state_transitions_total

Store and Event Bus Metrics:
  - store_operations_total
    Labels: store, operation, result
  - eventbus_messages_published_total, eventbus_messages_consumed_total,
    eventbus_messages_deduplicated_total

# Usage

	start := time.Now()
	results := recommender.Trending(ctx, events, nil, 10)
	metrics.RecordRecommendation("trending", len(results), time.Since(start))

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
