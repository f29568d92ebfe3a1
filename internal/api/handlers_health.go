// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/partymap/internal/models"
)

// health builds the shared payload. The service is healthy once a catalog
// snapshot has been installed, even if it holds no events.
func (h *Handler) health() models.HealthStatus {
	events, last := h.svc.CatalogStatus()
	status := "healthy"
	if last.IsZero() {
		status = "degraded"
	}
	return models.HealthStatus{
		Status:        status,
		Version:       h.version,
		CatalogEvents: events,
		LastRefresh:   last,
		Uptime:        time.Since(h.startTime).Seconds(),
	}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, h.health(), time.Now())
}

// HealthLive handles liveness probes. It returns 200 whenever the process
// can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady handles readiness probes. It returns 503 until the first
// catalog refresh completes.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := h.health()
	if health.Status != "healthy" {
		respondAPIError(w, http.StatusServiceUnavailable, &models.APIError{
			Code:    ErrCodeServiceUnavailable,
			Message: "catalog not loaded yet",
		})
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"ready":          true,
		"catalog_events": health.CatalogEvents,
	}, time.Now())
}
