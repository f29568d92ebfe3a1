// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

/*
Package api provides the HTTP interface of PartyMap using the Chi router.

# Routes

Health and metrics:

	GET  /health                 overall status and catalog size
	GET  /health/live            liveness probe
	GET  /health/ready           readiness probe (503 until the catalog is loaded)
	GET  /metrics                Prometheus exposition

Catalog and enrichment under /api/v1:

	GET  /events                 enriched catalog (category, limit)
	GET  /events/{eventID}       one enriched event
	POST /enrich                 enrich posted raw events
	POST /catalog/refresh        force a catalog refresh

Recommendations under /api/v1/recommendations:

	GET  /personalized           stored preferences and history (user_id, lat, lng, limit)
	POST /personalized           ad hoc scoring context
	GET  /trending               quality and recency (lat, lng, limit)
	GET  /nearby                 closest first (lat, lng, max_distance, limit)

Users under /api/v1/users/{userID}:

	GET    /preferences
	PUT    /preferences
	DELETE /preferences
	GET    /interactions
	POST   /interactions          published to the event bus (202 Accepted)
	DELETE /interactions/{eventID}

# Responses

Every endpoint answers with models.APIResponse: status "success" with data,
or status "error" with an APIError whose code is one of VALIDATION_ERROR,
BAD_REQUEST, NOT_FOUND, RATE_LIMIT_EXCEEDED, SERVICE_UNAVAILABLE or
INTERNAL_ERROR.

# Middleware

Global: request ID, real IP, panic recovery, CORS, access logging and
gzip. The /api/v1 group adds rate limiting (go-chi/httprate), security
headers and Prometheus request metrics.
*/
package api
