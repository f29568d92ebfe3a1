// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

/*
Package models defines the data structures shared across PartyMap.

Model categories:

 1. Event models:
    - RawEvent: an event record as returned by an event source
    - EnrichedEvent: a RawEvent plus heuristically derived attributes
    - Enrichment: the derived attributes (genres, crowd, dress code, price tier, ...)

 2. Scoring context:
    - UserPreferences: a user's recommendation filters and feature toggles
    - UserLocation: latitude/longitude used for proximity scoring
    - EventInteraction: viewed/clicked/saved/shared/attended flags for one event

 3. Results and API envelopes:
    - RecommendationResult: a scored event with match reasons and optional distance
    - APIResponse, APIError, Metadata: the standard HTTP response wrapper

Models carry no behavior beyond small accessors; enrichment and scoring live in
the enrich and recommend packages.
*/
package models
