// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package models

// RecommendationResult is one ranked event. Distance is in miles and is only
// set when both the event and the caller supplied a position.
type RecommendationResult struct {
	Event        EnrichedEvent `json:"event"`
	Score        float64       `json:"score"`
	MatchReasons []string      `json:"matchReasons"`
	Distance     *float64      `json:"distance,omitempty"`
}

// RecommendationMode names a ranking entry point.
type RecommendationMode string

// Ranking modes.
const (
	ModePersonalized RecommendationMode = "personalized"
	ModeTrending     RecommendationMode = "trending"
	ModeNearby       RecommendationMode = "nearby"
)

// RecommendationResponse is the payload of the recommendation endpoints.
type RecommendationResponse struct {
	Mode    RecommendationMode     `json:"mode"`
	Total   int                    `json:"total"`
	Results []RecommendationResult `json:"results"`
}

// ScoringContext is an ad hoc personalized request: everything the scorer
// needs without relying on stored preferences or history.
type ScoringContext struct {
	Events       []RawEvent         `json:"events" validate:"required,max=5000,dive"`
	Preferences  UserPreferences    `json:"preferences"`
	Location     *UserLocation      `json:"location,omitempty"`
	Interactions []EventInteraction `json:"interactions,omitempty" validate:"omitempty,max=10000,dive"`
	Limit        int                `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
}

// EnrichRequest is the payload of POST /api/v1/enrich.
type EnrichRequest struct {
	Events []RawEvent `json:"events" validate:"required,min=1,max=5000,dive"`
}
