// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/partymap/internal/models"
)

const (
	preferenceKeyPrefix = "pref:"
	preferenceStoreName = "preferences"
)

// PreferenceStore keeps one UserPreferences document per user.
type PreferenceStore struct {
	db  *badger.DB
	now func() time.Time
}

func preferenceKey(userID string) []byte {
	return []byte(preferenceKeyPrefix + userID)
}

// Get returns the stored preferences for userID, or ErrNotFound.
func (s *PreferenceStore) Get(ctx context.Context, userID string) (prefs *models.UserPreferences, err error) {
	defer func() { record(preferenceStoreName, "get", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out models.UserPreferences
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(preferenceKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get preferences: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Put replaces the preferences for userID. UserID and UpdatedAt are set on
// the stored copy; the returned value is what was written.
func (s *PreferenceStore) Put(ctx context.Context, userID string, prefs *models.UserPreferences) (stored *models.UserPreferences, err error) {
	defer func() { record(preferenceStoreName, "put", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cp := *prefs
	cp.UserID = userID
	cp.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(&cp)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(preferenceKey(userID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("set preferences: %w", err)
	}
	return &cp, nil
}

// Delete removes the preferences for userID. Deleting a missing user is not an error.
func (s *PreferenceStore) Delete(ctx context.Context, userID string) (err error) {
	defer func() { record(preferenceStoreName, "delete", err) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(preferenceKey(userID))
	})
	if err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
