// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package enrich

import (
	"github.com/tomtom215/partymap/internal/cache"
	"github.com/tomtom215/partymap/internal/models"
)

// genreRules maps genre tags to keywords. A keyword may serve several genres
// (house and techno are also electronic). Output order follows this table.
var genreRules = []cache.KeywordRule{
	{Label: models.GenreElectronic, Keywords: []string{
		"electronic", "edm", "dj", "techno", "house", "trance", "dubstep",
		"drum and bass", "drum & bass", "dnb", "rave",
	}},
	{Label: models.GenreHouse, Keywords: []string{"house", "deep house", "tech house"}},
	{Label: models.GenreTechno, Keywords: []string{"techno"}},
	{Label: models.GenreHipHop, Keywords: []string{"hip hop", "hip-hop", "hiphop", "rap", "trap", "r&b", "rnb"}},
	{Label: models.GenreLatin, Keywords: []string{"latin", "salsa", "bachata", "reggaeton", "merengue", "cumbia"}},
	{Label: models.GenreRock, Keywords: []string{"rock", "punk", "metal", "indie rock"}},
	{Label: models.GenrePop, Keywords: []string{"pop", "top 40", "top40"}},
	{Label: models.GenreJazz, Keywords: []string{"jazz", "blues", "soul", "funk"}},
	{Label: models.GenreReggae, Keywords: []string{"reggae", "dancehall"}},
	{Label: models.GenreDisco, Keywords: []string{"disco", "70s", "80s", "retro"}},
}

// orderedRule is one entry of a first-match-wins rule list.
type orderedRule[T any] struct {
	value   T
	matcher *cache.PatternMatcher
}

func newOrderedRules[T any](rules []struct {
	value    T
	keywords []string
}) []orderedRule[T] {
	out := make([]orderedRule[T], len(rules))
	for i, r := range rules {
		out[i] = orderedRule[T]{value: r.value, matcher: cache.NewPatternMatcherFromSlice(r.keywords, r.value)}
	}
	return out
}

// crowdRules are evaluated in order; the first rule with a keyword hit wins.
var crowdRules = newOrderedRules[models.CrowdType]([]struct {
	value    models.CrowdType
	keywords []string
}{
	{models.CrowdYoung, []string{"college", "university", "student", "campus", "frat", "sorority", "young crowd", "freshers"}},
	{models.CrowdUpscale, []string{"upscale", "luxury", "exclusive", "high-end", "high end", "elegant", "champagne", "bottle service"}},
	{models.CrowdCasual, []string{"casual", "laid-back", "laid back", "chill", "relaxed", "dive bar", "neighborhood"}},
	{models.CrowdLGBTQ, []string{"lgbtq", "lgbt", "gay", "lesbian", "queer", "pride", "drag"}},
})

// dressRules are evaluated in order; the first rule with a keyword hit wins.
var dressRules = newOrderedRules[models.DressCode]([]struct {
	value    models.DressCode
	keywords []string
}{
	{models.DressFormal, []string{"black tie", "black-tie", "formal", "gala", "tuxedo", "ball gown", "white tie"}},
	{models.DressDressy, []string{"dress to impress", "dressy", "cocktail attire", "dress code", "no sneakers", "upscale attire"}},
	{models.DressSmartCasual, []string{"smart casual", "smart-casual", "business casual"}},
	{models.DressCostume, []string{"costume", "halloween", "masquerade", "fancy dress", "cosplay", "themed attire"}},
})

// Feature keyword lists; each feature is detected independently.
var (
	vipMatcher = cache.NewPatternMatcherFromSlice([]string{
		"vip", "bottle service", "table service", "vip section", "vip table",
	}, "vip")
	drinksMatcher = cache.NewPatternMatcherFromSlice([]string{
		"drink special", "drink deal", "happy hour", "open bar", "cocktail",
		"2-for-1", "2 for 1", "two for one", "bottomless", "free drink",
	}, "drinks")
	foodMatcher = cache.NewPatternMatcherFromSlice([]string{
		"food", "dinner", "buffet", "brunch", "appetizer", "snack", "bites",
		"food truck", "tapas", "bbq", "barbecue",
	}, "food")
	liveMusicMatcher = cache.NewPatternMatcherFromSlice([]string{
		"live music", "live band", "band", "concert", "live performance", "acoustic", "live set",
	}, "live")
	djMatcher = cache.NewPatternMatcherFromSlice([]string{
		"dj", "deejay", "disc jockey", "turntable", "turntablist",
	}, "dj")
)

// Price keywords. The price field is only checked for free markers; the
// description may additionally mark an event as VIP priced.
var (
	freePriceMatcher = cache.NewPatternMatcherFromSlice([]string{
		"free", "no cover", "free entry", "free admission", "complimentary admission",
	}, models.PriceFree)
	vipPriceMatcher = cache.NewPatternMatcherFromSlice([]string{
		"vip", "bottle service", "premium", "exclusive",
	}, models.PriceVIP)
)

// largeVenueMatcher flags venue names suggesting a large capacity.
var largeVenueMatcher = cache.NewPatternMatcherFromSlice([]string{
	"arena", "stadium", "center", "centre", "theatre", "theater", "amphitheater", "amphitheatre",
}, "large")

// placeholderImageMarkers identify stock or missing images by URL substring.
var placeholderImageMarkers = []string{"placeholder", "default", "no-image", "noimage", "no_image"}
