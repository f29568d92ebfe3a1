// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package models

import "strings"

// CategoryParty is the category value that marks an event as a party.
const CategoryParty = "party"

// PartySubcategory is the pre-existing party type tag of an event.
type PartySubcategory string

// Party subcategories.
const (
	SubcategoryNightclub  PartySubcategory = "nightclub"
	SubcategoryFestival   PartySubcategory = "festival"
	SubcategoryHouseParty PartySubcategory = "house-party"
	SubcategoryRooftop    PartySubcategory = "rooftop"
	SubcategoryBar        PartySubcategory = "bar"
	SubcategoryConcert    PartySubcategory = "concert"
	SubcategoryBoatParty  PartySubcategory = "boat-party"
	SubcategoryOther      PartySubcategory = "other"
)

// RawEvent is an event record as produced by an event source.
// It is treated as immutable once handed to the enrichment pipeline.
//
// Coordinates, when present, are ordered [longitude, latitude]. Latitude and
// Longitude are an alternative representation used by some sources.
type RawEvent struct {
	ID               string           `json:"id" validate:"required,max=256"`
	Title            string           `json:"title" validate:"max=1000"`
	Description      string           `json:"description,omitempty"`
	Date             string           `json:"date,omitempty"`
	Time             string           `json:"time,omitempty"`
	RawDate          string           `json:"rawDate,omitempty"`
	Location         string           `json:"location,omitempty"`
	Venue            string           `json:"venue,omitempty"`
	Category         string           `json:"category,omitempty"`
	Price            string           `json:"price,omitempty"`
	Coordinates      []float64        `json:"coordinates,omitempty" validate:"omitempty,len=2"`
	Latitude         *float64         `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude        *float64         `json:"longitude,omitempty" validate:"omitempty,longitude"`
	URL              string           `json:"url,omitempty"`
	PartySubcategory PartySubcategory `json:"partySubcategory,omitempty"`
	Image            string           `json:"image,omitempty"`
	IsPartyEvent     bool             `json:"isPartyEvent,omitempty"`
}

// IsParty reports whether the event is a party-type event: category "party"
// (case-insensitive) or the explicit isPartyEvent flag.
func (e *RawEvent) IsParty() bool {
	return e.IsPartyEvent || strings.EqualFold(strings.TrimSpace(e.Category), CategoryParty)
}

// LatLng returns the event position, preferring the coordinates pair over the
// separate latitude/longitude fields. ok is false when neither is complete.
func (e *RawEvent) LatLng() (lat, lng float64, ok bool) {
	if len(e.Coordinates) == 2 {
		return e.Coordinates[1], e.Coordinates[0], true
	}
	if e.Latitude != nil && e.Longitude != nil {
		return *e.Latitude, *e.Longitude, true
	}
	return 0, 0, false
}

// HasCoordinates reports whether the event has a usable position.
func (e *RawEvent) HasCoordinates() bool {
	_, _, ok := e.LatLng()
	return ok
}

// CrowdType is the inferred audience of a party.
type CrowdType string

// Crowd types.
const (
	CrowdYoung   CrowdType = "young"
	CrowdUpscale CrowdType = "upscale"
	CrowdCasual  CrowdType = "casual"
	CrowdLGBTQ   CrowdType = "lgbtq"
	CrowdMixed   CrowdType = "mixed"
)

// DressCode is the inferred dress code of a party.
type DressCode string

// Dress codes.
const (
	DressFormal      DressCode = "formal"
	DressDressy      DressCode = "dressy"
	DressSmartCasual DressCode = "smart-casual"
	DressCostume     DressCode = "costume"
	DressCasual      DressCode = "casual"
)

// PriceRange is the inferred price tier of a party.
type PriceRange string

// Price ranges.
const (
	PriceFree    PriceRange = "free"
	PriceLow     PriceRange = "low"
	PriceMedium  PriceRange = "medium"
	PriceHigh    PriceRange = "high"
	PriceVIP     PriceRange = "vip"
	PriceUnknown PriceRange = "unknown"
)

// TimeOfDay is the time bucket of an event start time.
type TimeOfDay string

// Time-of-day buckets.
const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// Genre tags used by the classifier.
const (
	GenreElectronic = "electronic"
	GenreHouse      = "house"
	GenreTechno     = "techno"
	GenreHipHop     = "hip-hop"
	GenreLatin      = "latin"
	GenreRock       = "rock"
	GenrePop        = "pop"
	GenreJazz       = "jazz"
	GenreReggae     = "reggae"
	GenreDisco      = "disco"
	GenreOther      = "other"
)

// Social platform keys in Enrichment.SocialMediaLinks.
const (
	SocialInstagram = "instagram"
	SocialFacebook  = "facebook"
	SocialTwitter   = "twitter"
	SocialWebsite   = "website"
)

// Enrichment holds the attributes derived from an event's free text and
// structured fields. Popularity is always within [1,100].
type Enrichment struct {
	MusicGenres      []string          `json:"musicGenres"`
	CrowdType        CrowdType         `json:"crowdType"`
	DressCode        DressCode         `json:"dressCode"`
	PriceRange       PriceRange        `json:"priceRange"`
	TimeOfDay        TimeOfDay         `json:"timeOfDay"`
	IsWeekend        bool              `json:"isWeekend"`
	HasVIP           bool              `json:"hasVIP"`
	HasDrinkSpecials bool              `json:"hasDrinkSpecials"`
	HasFoodOptions   bool              `json:"hasFoodOptions"`
	HasLiveMusic     bool              `json:"hasLiveMusic"`
	HasDJ            bool              `json:"hasDJ"`
	MinimumAge       *int              `json:"minimumAge,omitempty"`
	Popularity       int               `json:"popularity"`
	SocialMediaLinks map[string]string `json:"socialMediaLinks,omitempty"`
}

// HasGenre reports whether genre is among the detected genres.
func (en *Enrichment) HasGenre(genre string) bool {
	for _, g := range en.MusicGenres {
		if g == genre {
			return true
		}
	}
	return false
}

// EnrichedEvent is a RawEvent plus its derived attributes. A nil Enrichment
// means the event was passed through unmodified (not a party-type event).
type EnrichedEvent struct {
	RawEvent
	Enrichment *Enrichment `json:"enrichment,omitempty"`
}

// Popularity returns the derived popularity, or def when not enriched.
func (e *EnrichedEvent) Popularity(def int) int {
	if e.Enrichment == nil {
		return def
	}
	return e.Enrichment.Popularity
}
