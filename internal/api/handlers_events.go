// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/partymap/internal/logging"
	"github.com/tomtom215/partymap/internal/models"
)

// maxEventsLimit bounds GET /events.
const maxEventsLimit = 5000

// Events handles GET /api/v1/events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, apiErr := parseIntParam(r, "limit", 0)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if limit == 0 || limit > maxEventsLimit {
		limit = maxEventsLimit
	}

	events := h.svc.Events(strings.TrimSpace(r.URL.Query().Get("category")), limit)
	respondSuccess(w, http.StatusOK, events, start)
}

// Event handles GET /api/v1/events/{eventID}.
func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ev, err := h.svc.Event(chi.URLParam(r, "eventID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, ev, start)
}

// Enrich handles POST /api/v1/enrich.
func (h *Handler) Enrich(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.EnrichRequest
	if apiErr := h.decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	respondSuccess(w, http.StatusOK, h.svc.Enrich(req.Events), start)
}

// RefreshCatalog handles POST /api/v1/catalog/refresh.
func (h *Handler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, err := h.svc.RefreshCatalog(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int("events", n).Msg("Catalog refreshed on request")
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"events":       n,
		"last_refresh": time.Now().UTC(),
	}, start)
}
