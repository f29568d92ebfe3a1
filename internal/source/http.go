// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/partymap/internal/logging"
	"github.com/tomtom215/partymap/internal/metrics"
	"github.com/tomtom215/partymap/internal/models"
)

// searchPath is appended to the configured base URL.
const searchPath = "/api/events/search"

// maxResponseBytes bounds upstream response bodies.
const maxResponseBytes = 16 << 20

// HTTPConfig configures an HTTPSearcher.
type HTTPConfig struct {
	BaseURL string
	APIKey  string

	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int

	// BreakerMaxFailures consecutive failures open the circuit for BreakerTimeout.
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// statusError is an unexpected upstream status code.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.code, e.body)
}

// HTTPSearcher queries a JSON event search API. Calls are rate limited and
// wrapped in a circuit breaker; 5xx responses and transport errors count as
// failures, 4xx responses do not.
type HTTPSearcher struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]models.RawEvent]
	name    string
}

// NewHTTPSearcher creates a searcher for cfg.BaseURL.
func NewHTTPSearcher(cfg HTTPConfig) *HTTPSearcher {
	name := "source-http"
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	s := &HTTPSearcher{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		name:    name,
	}

	s.cb = gobreaker.NewCircuitBreaker[[]models.RawEvent](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.code < http.StatusInternalServerError
			}
			// A caller cancelling is not an upstream failure
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})

	return s
}

// Name identifies the searcher in logs and metrics.
func (s *HTTPSearcher) Name() string { return "http" }

// Search calls the upstream API.
func (s *HTTPSearcher) Search(ctx context.Context, q Query) (events []models.RawEvent, err error) {
	start := time.Now()
	defer func() { metrics.RecordSourceRequest(s.Name(), time.Since(start), len(events), err) }()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	events, err = s.cb.Execute(func() ([]models.RawEvent, error) {
		return s.fetch(ctx, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordCircuitBreakerRequest(s.name, "rejected")
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		metrics.RecordCircuitBreakerRequest(s.name, "failure")
		return nil, fmt.Errorf("search events: %w", err)
	}

	metrics.RecordCircuitBreakerRequest(s.name, "success")
	return truncate(events, q.Limit), nil
}

func (s *HTTPSearcher) fetch(ctx context.Context, q Query) ([]models.RawEvent, error) {
	params := url.Values{}
	if q.Text != "" {
		params.Set("q", q.Text)
	}
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := s.baseURL + searchPath
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &statusError{code: resp.StatusCode, body: snippet}
	}

	events, err := decodeEvents(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return events, nil
}
