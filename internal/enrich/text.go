// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package enrich

import (
	"github.com/tomtom215/partymap/internal/cache"
	"github.com/tomtom215/partymap/internal/models"
)

var genreMatcher = cache.NewPatternMatcher(genreRules)

// detectGenres returns the matched genre tags in table order, or [other].
func detectGenres(text string) []string {
	found := genreMatcher.Labels(text)
	genres := make([]string, 0, len(found))
	for _, rule := range genreRules {
		if found[rule.Label] {
			genres = append(genres, rule.Label)
		}
	}
	if len(genres) == 0 {
		return []string{models.GenreOther}
	}
	return genres
}

func firstMatch[T any](rules []orderedRule[T], text string, def T) T {
	for _, r := range rules {
		if r.matcher.Contains(text) {
			return r.value
		}
	}
	return def
}

func detectCrowdType(text string) models.CrowdType {
	return firstMatch(crowdRules, text, models.CrowdMixed)
}

func detectDressCode(text string) models.DressCode {
	return firstMatch(dressRules, text, models.DressCasual)
}

func detectFeatures(text string) (vip, drinks, food, live, dj bool) {
	return vipMatcher.Contains(text),
		drinksMatcher.Contains(text),
		foodMatcher.Contains(text),
		liveMusicMatcher.Contains(text),
		djMatcher.Contains(text)
}
