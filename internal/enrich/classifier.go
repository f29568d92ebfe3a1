// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package enrich

import (
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/partymap/internal/models"
)

// Version identifies the rule set. It is part of every memoization key, so
// bumping it invalidates cached enrichments.
const Version = "2026.10.1"

// Classifier derives Enrichment for party events. The zero value is not
// usable; create one with NewClassifier. A Classifier holds no mutable state
// and is safe for concurrent use.
type Classifier struct {
	now func() time.Time
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithClock sets the reference clock used to complete display dates that
// omit the year.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClassifier creates a Classifier.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the classifier's reference time.
func (c *Classifier) Now() time.Time {
	return c.now()
}

// Enrich returns ev with derived attributes. Non-party events are returned
// with a nil Enrichment. Enrich never panics on malformed input and never
// modifies ev.
func (c *Classifier) Enrich(ev models.RawEvent) models.EnrichedEvent {
	ev.Coordinates = slices.Clone(ev.Coordinates)
	if ev.Latitude != nil {
		lat := *ev.Latitude
		ev.Latitude = &lat
	}
	if ev.Longitude != nil {
		lng := *ev.Longitude
		ev.Longitude = &lng
	}

	out := models.EnrichedEvent{RawEvent: ev}
	if !ev.IsParty() {
		return out
	}

	text := strings.ToLower(ev.Title + " " + ev.Description)
	now := c.now()

	en := &models.Enrichment{
		MusicGenres:      detectGenres(text),
		CrowdType:        detectCrowdType(text),
		DressCode:        detectDressCode(text),
		PriceRange:       detectPriceRange(ev.Price, strings.ToLower(ev.Description)),
		TimeOfDay:        detectTimeOfDay(ev.Time),
		IsWeekend:        detectWeekend(ev.RawDate, ev.Date, now),
		MinimumAge:       detectMinimumAge(text, ev.PartySubcategory),
		SocialMediaLinks: extractSocialLinks(ev.Description),
	}
	en.HasVIP, en.HasDrinkSpecials, en.HasFoodOptions, en.HasLiveMusic, en.HasDJ = detectFeatures(text)
	en.Popularity = popularity(&ev, en)

	out.Enrichment = en
	return out
}

// EnrichAll enriches events element-wise, preserving order and length.
func (c *Classifier) EnrichAll(events []models.RawEvent) []models.EnrichedEvent {
	out := make([]models.EnrichedEvent, len(events))
	for i := range events {
		out[i] = c.Enrich(events[i])
	}
	return out
}
