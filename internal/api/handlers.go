// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package api

import (
	"time"

	"github.com/tomtom215/partymap/internal/discovery"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health probes
//   - handlers_events.go: catalog, enrichment and refresh
//   - handlers_recommend.go: recommendation modes
//   - handlers_users.go: stored preferences and interactions
type Handler struct {
	svc          *discovery.Service
	version      string
	maxBodyBytes int64
	startTime    time.Time
}

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	// Version is reported by the health endpoint.
	Version string

	// MaxBodyBytes bounds request bodies. Zero uses 4 MiB.
	MaxBodyBytes int64
}

// NewHandler creates a new API handler.
func NewHandler(svc *discovery.Service, cfg HandlerConfig) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 4 << 20
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		svc:          svc,
		version:      cfg.Version,
		maxBodyBytes: cfg.MaxBodyBytes,
		startTime:    time.Now(),
	}
}
