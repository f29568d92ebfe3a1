// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package enrich

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/partymap/internal/models"
)

// nightclubDefaultAge applies to nightclubs that state no age policy.
const nightclubDefaultAge = 21

// agePattern is one minimum-age regex with the range of values it may yield.
// "N+" is also common for counts ("50+ vendors") so it only accepts the usual
// drinking and door ages.
type agePattern struct {
	re       *regexp.Regexp
	min, max int
}

var agePatterns = []agePattern{
	{regexp.MustCompile(`(?:^|[^$\d])(\d{2})\s*\+`), 16, 25},
	{regexp.MustCompile(`\b(\d{2})\s*(?:and|&)\s*(?:over|up|older)\b`), 13, 99},
	{regexp.MustCompile(`\bages?\s*(\d{2})\b`), 13, 99},
}

// detectMinimumAge returns the minimum age stated in text, 0 for
// "all ages", the nightclub default, or nil.
func detectMinimumAge(text string, sub models.PartySubcategory) *int {
	switch {
	case strings.Contains(text, "21+"):
		return intPtr(21)
	case strings.Contains(text, "18+"):
		return intPtr(18)
	case strings.Contains(text, "all ages") || strings.Contains(text, "all-ages"):
		return intPtr(0)
	}

	for _, p := range agePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if age, err := strconv.Atoi(m[1]); err == nil && age >= p.min && age <= p.max {
			return intPtr(age)
		}
	}

	if sub == models.SubcategoryNightclub {
		return intPtr(nightclubDefaultAge)
	}
	return nil
}

func intPtr(v int) *int { return &v }
