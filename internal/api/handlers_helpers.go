// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package api

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/partymap/internal/discovery"
	"github.com/tomtom215/partymap/internal/logging"
	"github.com/tomtom215/partymap/internal/models"
	"github.com/tomtom215/partymap/internal/source"
	"github.com/tomtom215/partymap/internal/validation"
)

// Error codes for API responses.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = validation.CodeValidationError
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// userIDTag validates user IDs taken from the path.
const userIDTag = "required,max=128,printascii"

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a weak ETag from an FNV-1a hash of data.
func generateETag(data []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(data)
	return fmt.Sprintf(`W/"%x"`, h.Sum32())
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error envelope. err, when set, is logged and never
// returned to the client.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}
	respondAPIError(w, status, &models.APIError{Code: code, Message: message})
}

func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    apiErr,
	})
}

// respondServiceError maps errors from the discovery layer to HTTP statuses.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, discovery.ErrNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Resource not found", nil)
	case errors.Is(err, discovery.ErrEmptyInteraction):
		respondAPIError(w, http.StatusBadRequest, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "interaction must set at least one of viewed, clicked, saved, shared, attended",
		})
	case errors.Is(err, source.ErrCircuitOpen),
		errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Upstream unavailable")
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Event source temporarily unavailable", nil)
	default:
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", err)
	}
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *models.APIError {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}

// decodeJSON reads a bounded request body into dst.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) *models.APIError {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &models.APIError{
				Code:    ErrCodeBadRequest,
				Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			}
		}
		return &models.APIError{Code: ErrCodeBadRequest, Message: "failed to read request body"}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return &models.APIError{Code: ErrCodeBadRequest, Message: "request body is required"}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &models.APIError{Code: ErrCodeBadRequest, Message: "invalid JSON body"}
	}
	return nil
}

// parseIntParam reads an optional integer query parameter.
func parseIntParam(r *http.Request, key string, defaultValue int) (int, *models.APIError) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(key, "must be an integer")
	}
	if verr := validation.ValidateVar(v, "gte=0", key); verr != nil {
		return 0, verr.ToAPIError()
	}
	return v, nil
}

// parseFloatParam reads an optional non-negative float query parameter.
func parseFloatParam(r *http.Request, key string) (float64, *models.APIError) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, invalidParam(key, "must be a number")
	}
	if verr := validation.ValidateVar(v, "gte=0,lte=500", key); verr != nil {
		return 0, verr.ToAPIError()
	}
	return v, nil
}

// parseLocation reads lat and lng. Both or neither must be present.
func parseLocation(r *http.Request) (*models.UserLocation, *models.APIError) {
	q := r.URL.Query()
	latRaw, lngRaw := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lng"))
	if latRaw == "" && lngRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lngRaw == "" {
		return nil, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "lat and lng must be provided together",
		}
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, invalidParam("lat", "must be a number")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil, invalidParam("lng", "must be a number")
	}

	loc := &models.UserLocation{Latitude: lat, Longitude: lng}
	if apiErr := validateRequest(loc); apiErr != nil {
		return nil, apiErr
	}
	return loc, nil
}

// userIDParam validates a user ID.
func userIDParam(raw string) (string, *models.APIError) {
	if verr := validation.ValidateVar(raw, userIDTag, "user_id"); verr != nil {
		return "", verr.ToAPIError()
	}
	return raw, nil
}

func invalidParam(key, problem string) *models.APIError {
	return &models.APIError{
		Code:    ErrCodeValidation,
		Message: key + " " + problem,
		Details: map[string]interface{}{key: key + " " + problem},
	}
}
