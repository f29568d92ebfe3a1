// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created lazily and shared; it caches struct
// metadata so repeated validation of request payloads is cheap. Errors are
// reported with JSON field names and converted to the API error envelope:
//
//	{"code": "VALIDATION_ERROR", "message": "latitude must be a valid latitude (-90 to 90)",
//	 "details": {"latitude": "latitude must be a valid latitude (-90 to 90)"}}
//
// Custom tags:
//   - notblank: string must contain a non-whitespace character
//
// Model types in internal/models carry their validate tags, so handlers call
// ValidateStruct on decoded payloads and ValidateVar on query parameters.
package validation
