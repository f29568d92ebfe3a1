// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/partymap/internal/models"
)

const (
	interactionKeyPrefix = "ix:"
	interactionStoreName = "interactions"

	// keySeparator cannot appear in validated user IDs, so a user's prefix
	// never matches another user whose ID extends it.
	keySeparator = "\x00"
)

// InteractionStore keeps one merged EventInteraction per user and event.
type InteractionStore struct {
	db *badger.DB
}

func interactionPrefix(userID string) []byte {
	return []byte(interactionKeyPrefix + userID + keySeparator)
}

func interactionKey(userID, eventID string) []byte {
	return []byte(interactionKeyPrefix + userID + keySeparator + eventID)
}

// Record merges ix into the stored interaction for (ix.UserID, ix.EventID).
// Flags are OR-ed and the later timestamp wins, so replays are idempotent.
// The merged record is returned.
func (s *InteractionStore) Record(ctx context.Context, ix *models.EventInteraction) (merged *models.EventInteraction, err error) {
	defer func() { record(interactionStoreName, "record", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ix.EventID == "" {
		return nil, fmt.Errorf("record interaction: event id is required")
	}

	key := interactionKey(ix.UserID, ix.EventID)
	out := *ix

	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return fmt.Errorf("get interaction: %w", err)
		default:
			var existing models.EventInteraction
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return fmt.Errorf("decode interaction: %w", err)
			}
			existing.Merge(ix)
			out = existing
		}

		data, err := json.Marshal(&out)
		if err != nil {
			return fmt.Errorf("marshal interaction: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every interaction of userID, most recent first.
func (s *InteractionStore) List(ctx context.Context, userID string) (list []models.EventInteraction, err error) {
	defer func() { record(interactionStoreName, "list", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list = make([]models.EventInteraction, 0)
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		prefix := interactionPrefix(userID)
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var ix models.EventInteraction
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ix)
			}); err != nil {
				return fmt.Errorf("decode interaction: %w", err)
			}
			list = append(list, ix)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	return list, nil
}

// Delete removes the interaction for (userID, eventID), or returns ErrNotFound.
func (s *InteractionStore) Delete(ctx context.Context, userID, eventID string) (err error) {
	defer func() { record(interactionStoreName, "delete", err) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	key := interactionKey(userID, eventID)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get interaction: %w", err)
		}
		return txn.Delete(key)
	})
}
