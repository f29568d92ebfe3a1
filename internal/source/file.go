// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/partymap/internal/metrics"
	"github.com/tomtom215/partymap/internal/models"
)

// FileSearcher serves events from a JSON file. The file holds either an
// array of events or an object with an "events" array, the same shape the
// HTTP search API returns. The file is re-read on every search so edits
// show up on the next catalog refresh.
type FileSearcher struct {
	path string
}

// NewFileSearcher creates a searcher for the fixture at path.
func NewFileSearcher(path string) *FileSearcher {
	return &FileSearcher{path: path}
}

// Name identifies the searcher in logs and metrics.
func (s *FileSearcher) Name() string { return "file" }

// Search reads the file and applies the query limit.
func (s *FileSearcher) Search(ctx context.Context, q Query) (events []models.RawEvent, err error) {
	start := time.Now()
	defer func() { metrics.RecordSourceRequest(s.Name(), time.Since(start), len(events), err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}

	events, err = decodeEvents(data)
	if err != nil {
		return nil, fmt.Errorf("decode event file %s: %w", s.path, err)
	}
	return truncate(events, q.Limit), nil
}

// searchResponse is the envelope returned by the search API.
type searchResponse struct {
	Events []models.RawEvent `json:"events"`
}

// decodeEvents accepts a bare array or a {"events": [...]} envelope.
func decodeEvents(data []byte) ([]models.RawEvent, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []models.RawEvent{}, nil
	}

	if trimmed[0] == '[' {
		var events []models.RawEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, err
		}
		return events, nil
	}

	var resp searchResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, err
	}
	if resp.Events == nil {
		resp.Events = []models.RawEvent{}
	}
	return resp.Events, nil
}
