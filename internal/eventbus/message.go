// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/partymap/internal/models"
)

// Metadata keys set on every interaction message.
const (
	MetadataUserID  = "user_id"
	MetadataEventID = "event_id"
)

// interactionNamespace scopes payload-derived message UUIDs.
var interactionNamespace = uuid.MustParse("6f1c7f0e-5a43-4f7e-9d1b-2b0c3a8e9d01")

// NewInteractionMessage encodes ix. The UUID is a v5 hash of the payload.
func NewInteractionMessage(ix *models.EventInteraction) (*message.Message, error) {
	payload, err := json.Marshal(ix)
	if err != nil {
		return nil, fmt.Errorf("marshal interaction: %w", err)
	}

	msg := message.NewMessage(uuid.NewSHA1(interactionNamespace, payload).String(), payload)
	msg.Metadata.Set(MetadataUserID, ix.UserID)
	msg.Metadata.Set(MetadataEventID, ix.EventID)
	return msg, nil
}

// DecodeInteraction parses an interaction message payload.
func DecodeInteraction(msg *message.Message) (*models.EventInteraction, error) {
	var ix models.EventInteraction
	if err := json.Unmarshal(msg.Payload, &ix); err != nil {
		return nil, fmt.Errorf("decode interaction %s: %w", msg.UUID, err)
	}
	if ix.EventID == "" {
		return nil, fmt.Errorf("decode interaction %s: missing event id", msg.UUID)
	}
	return &ix, nil
}
