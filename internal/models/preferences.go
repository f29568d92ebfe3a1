// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package models

import "time"

// PreferredDay values for UserPreferences.PreferredDays.
const (
	DayWeekday = "weekday"
	DayWeekend = "weekend"
)

// PreferredTime values for UserPreferences.PreferredTimes.
const (
	TimePreferenceDay   = "day"
	TimePreferenceNight = "night"
)

// UserPreferences are the recommendation filters a user has chosen.
// Empty slices and false toggles mean "no preference" for that dimension.
//
// MinimumAge is the user's age ceiling: events requiring an older audience are
// penalized. MaxDistance is in miles; zero means the configured default.
type UserPreferences struct {
	UserID             string             `json:"userId,omitempty" validate:"omitempty,max=128"`
	MusicGenres        []string           `json:"musicGenres,omitempty" validate:"omitempty,max=20,dive,max=32"`
	PartyTypes         []PartySubcategory `json:"partyTypes,omitempty" validate:"omitempty,max=10,dive,oneof=nightclub festival house-party rooftop bar concert boat-party other"`
	PriceRanges        []PriceRange       `json:"priceRanges,omitempty" validate:"omitempty,max=6,dive,oneof=free low medium high vip unknown"`
	CrowdTypes         []CrowdType        `json:"crowdTypes,omitempty" validate:"omitempty,max=5,dive,oneof=young upscale casual lgbtq mixed"`
	MinimumAge         *int               `json:"minimumAge,omitempty" validate:"omitempty,min=0,max=120"`
	MaxDistance        float64            `json:"maxDistance,omitempty" validate:"omitempty,gte=0,lte=500"`
	PreferredDays      []string           `json:"preferredDays,omitempty" validate:"omitempty,max=2,dive,oneof=weekday weekend"`
	PreferredTimes     []string           `json:"preferredTimes,omitempty" validate:"omitempty,max=2,dive,oneof=day night"`
	WantsVIP           bool               `json:"wantsVIP,omitempty"`
	WantsDrinkSpecials bool               `json:"wantsDrinkSpecials,omitempty"`
	WantsFoodOptions   bool               `json:"wantsFoodOptions,omitempty"`
	WantsLiveMusic     bool               `json:"wantsLiveMusic,omitempty"`
	WantsDJ            bool               `json:"wantsDJ,omitempty"`
	UpdatedAt          time.Time          `json:"updatedAt,omitempty"`
}

// UserLocation is a WGS84 position.
type UserLocation struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// EventInteraction records what a user did with one event.
type EventInteraction struct {
	UserID    string    `json:"userId,omitempty" validate:"omitempty,max=128"`
	EventID   string    `json:"eventId" validate:"required,max=256"`
	Viewed    bool      `json:"viewed,omitempty"`
	Clicked   bool      `json:"clicked,omitempty"`
	Saved     bool      `json:"saved,omitempty"`
	Shared    bool      `json:"shared,omitempty"`
	Attended  bool      `json:"attended,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Merge ORs the flags of other into i and keeps the later timestamp.
func (i *EventInteraction) Merge(other *EventInteraction) {
	i.Viewed = i.Viewed || other.Viewed
	i.Clicked = i.Clicked || other.Clicked
	i.Saved = i.Saved || other.Saved
	i.Shared = i.Shared || other.Shared
	i.Attended = i.Attended || other.Attended
	if other.Timestamp.After(i.Timestamp) {
		i.Timestamp = other.Timestamp
	}
}

// HasAny reports whether at least one interaction flag is set.
func (i *EventInteraction) HasAny() bool {
	return i.Viewed || i.Clicked || i.Saved || i.Shared || i.Attended
}
