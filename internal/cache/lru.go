// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package cache

import (
	"container/list"
	"sync"
	"time"
)

type lruItem struct {
	key       string
	expiresAt time.Time
}

// LRUCache is a bounded set of recently seen keys with TTL. Lookups and
// eviction are O(1). The event bus uses it to drop redelivered messages.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recently used
	items    map[string]*list.Element
	now      func() time.Time
}

// NewLRUCache creates an LRU with the given capacity (minimum 1) and TTL.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element),
		now:      time.Now,
	}
}

// IsDuplicate reports whether key was seen within the TTL. Unseen (or
// expired) keys are recorded and reported as new.
func (c *LRUCache) IsDuplicate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		if !c.now().After(el.Value.(*lruItem).expiresAt) {
			c.order.MoveToFront(el)
			return true
		}
		c.order.Remove(el)
		delete(c.items, key)
	}

	c.addLocked(key)
	return false
}

func (c *LRUCache) addLocked(key string) {
	expiresAt := c.now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		el.Value.(*lruItem).expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&lruItem{key: key, expiresAt: expiresAt})
	for len(c.items) > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*lruItem).key)
	}
}

// Len returns the number of tracked keys.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
