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

// PersonalizedGet handles GET /api/v1/recommendations/personalized.
// It ranks the catalog with the user's stored preferences and history.
func (h *Handler) PersonalizedGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, apiErr := userIDParam(r.URL.Query().Get("user_id"))
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	loc, apiErr := parseLocation(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	limit, apiErr := parseIntParam(r, "limit", 0)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.svc.Personalized(r.Context(), userID, loc, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, resp, start)
}

// PersonalizedPost handles POST /api/v1/recommendations/personalized.
// The body is a complete scoring context; nothing is read from the stores.
func (h *Handler) PersonalizedPost(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var sc models.ScoringContext
	if apiErr := h.decodeJSON(w, r, &sc); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&sc); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	respondSuccess(w, http.StatusOK, h.svc.Score(r.Context(), &sc), start)
}

// Trending handles GET /api/v1/recommendations/trending.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	loc, apiErr := parseLocation(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	limit, apiErr := parseIntParam(r, "limit", 0)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	respondSuccess(w, http.StatusOK, h.svc.Trending(r.Context(), loc, limit), start)
}

// Nearby handles GET /api/v1/recommendations/nearby. lat and lng are
// required.
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	loc, apiErr := parseLocation(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if loc == nil {
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "lat and lng are required",
			Details: map[string]interface{}{"lat": "lat is required", "lng": "lng is required"},
		})
		return
	}
	maxDistance, apiErr := parseFloatParam(r, "max_distance")
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	limit, apiErr := parseIntParam(r, "limit", 0)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	respondSuccess(w, http.StatusOK, h.svc.Nearby(r.Context(), *loc, maxDistance, limit), start)
}
