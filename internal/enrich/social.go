// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package enrich

import (
	"regexp"
	"strings"

	"github.com/tomtom215/partymap/internal/models"
)

type socialPattern struct {
	platform string
	re       *regexp.Regexp
}

// urlStart anchors a social URL so that "netflix.com" is not read as "x.com".
const urlStart = `(?i)(?:^|[^A-Za-z0-9_.\-/])`

// socialPatterns capture profile URLs with or without a scheme in group 1.
// The first match per platform wins.
var socialPatterns = []socialPattern{
	{models.SocialInstagram, regexp.MustCompile(urlStart + `((?:https?://)?(?:www\.)?instagram\.com/[A-Za-z0-9_.]+)`)},
	{models.SocialFacebook, regexp.MustCompile(urlStart + `((?:https?://)?(?:www\.|m\.)?(?:facebook|fb)\.com/[A-Za-z0-9_.\-]+)`)},
	{models.SocialTwitter, regexp.MustCompile(urlStart + `((?:https?://)?(?:www\.)?(?:twitter|x)\.com/[A-Za-z0-9_]+)`)},
}

var (
	genericURL   = regexp.MustCompile(`(?i)https?://[^\s<>"'()\[\]]+`)
	socialDomain = regexp.MustCompile(`(?i)^https?://(?:www\.|m\.)?(?:instagram|facebook|fb|twitter|x)\.com(?:/|$)`)
)

// extractSocialLinks pulls social profile URLs and the first other website
// out of description. Returns nil when nothing is found.
func extractSocialLinks(description string) map[string]string {
	if description == "" {
		return nil
	}

	links := make(map[string]string)
	for _, p := range socialPatterns {
		if m := p.re.FindStringSubmatch(description); m != nil {
			links[p.platform] = normalizeURL(m[1])
		}
	}

	for _, m := range genericURL.FindAllString(description, -1) {
		m = strings.TrimRight(m, ".,;:!?")
		if socialDomain.MatchString(m) {
			continue
		}
		links[models.SocialWebsite] = m
		break
	}

	if len(links) == 0 {
		return nil
	}
	return links
}

func normalizeURL(u string) string {
	u = strings.TrimRight(u, ".,;:!?/")
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		u = "https://" + u
	}
	return u
}
