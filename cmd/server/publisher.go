// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package main

import (
	"context"

	"github.com/tomtom215/partymap/internal/models"
	"github.com/tomtom215/partymap/internal/store"
)

// directPublisher writes interactions straight to the store when the event
// bus is disabled.
type directPublisher struct {
	interactions *store.InteractionStore
}

func (p directPublisher) PublishInteraction(ctx context.Context, ix *models.EventInteraction) error {
	_, err := p.interactions.Record(ctx, ix)
	return err
}
