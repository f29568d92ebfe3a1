// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/partymap/internal/models"
)

// pathUserID validates the {userID} path parameter, writing the error
// response itself when it is invalid.
func pathUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, apiErr := userIDParam(chi.URLParam(r, "userID"))
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return "", false
	}
	return userID, true
}

// GetPreferences handles GET /api/v1/users/{userID}/preferences.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	prefs, err := h.svc.Preferences(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, prefs, start)
}

// PutPreferences handles PUT /api/v1/users/{userID}/preferences. The body
// replaces any stored preferences.
func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var prefs models.UserPreferences
	if apiErr := h.decodeJSON(w, r, &prefs); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&prefs); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	stored, err := h.svc.SetPreferences(r.Context(), userID, &prefs)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, stored, start)
}

// DeletePreferences handles DELETE /api/v1/users/{userID}/preferences.
func (h *Handler) DeletePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeletePreferences(r.Context(), userID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListInteractions handles GET /api/v1/users/{userID}/interactions.
func (h *Handler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	list, err := h.svc.Interactions(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, list, start)
}

// RecordInteraction handles POST /api/v1/users/{userID}/interactions. The
// interaction is persisted asynchronously, so the response is 202.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	var ix models.EventInteraction
	if apiErr := h.decodeJSON(w, r, &ix); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(&ix); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	accepted, err := h.svc.RecordInteraction(r.Context(), userID, &ix)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusAccepted, accepted, start)
}

// DeleteInteraction handles DELETE /api/v1/users/{userID}/interactions/{eventID}.
func (h *Handler) DeleteInteraction(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteInteraction(r.Context(), userID, chi.URLParam(r, "eventID")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
