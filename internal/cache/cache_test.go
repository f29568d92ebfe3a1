// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package cache

import (
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)}
}

func TestTTL_GetSetExpire(t *testing.T) {
	t.Parallel()

	clock := newClock()
	c := NewTTL[int](time.Minute, WithClock(clock.Now))

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v, want 1, true", v, ok)
	}

	clock.Advance(61 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) after TTL = found, want expired")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Evictions != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 eviction", stats)
	}
	if got := c.HitRate(); got != 50 {
		t.Errorf("HitRate() = %v, want 50", got)
	}
}

func TestTTL_SetWithTTLAndCleanup(t *testing.T) {
	t.Parallel()

	clock := newClock()
	c := NewTTL[string](time.Hour, WithClock(clock.Now))
	c.SetWithTTL("short", "x", time.Second)
	c.Set("long", "y")

	clock.Advance(2 * time.Second)
	if removed := c.Cleanup(); removed != 1 {
		t.Errorf("Cleanup() = %d, want 1", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	c.Delete("long")
	c.Delete("missing")
	if c.Len() != 0 {
		t.Errorf("Len() after Delete = %d, want 0", c.Len())
	}
}

func TestTTL_MaxKeys(t *testing.T) {
	t.Parallel()

	clock := newClock()
	c := NewTTL[int](time.Minute, WithClock(clock.Now), WithMaxKeys(2))
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10) // overwrite never triggers eviction
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	c.Set("c", 3)
	if c.Len() != 1 {
		t.Errorf("Len() after overflow = %d, want 1", c.Len())
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %v, %v, want 3, true", v, ok)
	}
}

func TestTTL_Clear(t *testing.T) {
	t.Parallel()

	c := NewTTL[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if got := c.GetStats().Evictions; got != 2 {
		t.Errorf("Evictions = %d, want 2", got)
	}
}

func TestTTL_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewTTL[int](time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := GenerateKey("k", j%10)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() != 10 {
		t.Errorf("Len() = %d, want 10", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	a := GenerateKey("enrich", map[string]string{"id": "1"})
	b := GenerateKey("enrich", map[string]string{"id": "1"})
	c := GenerateKey("enrich", map[string]string{"id": "2"})

	if a != b {
		t.Errorf("GenerateKey not deterministic: %q vs %q", a, b)
	}
	if a == c {
		t.Error("GenerateKey collided for different params")
	}
	if !strings.HasPrefix(a, "enrich:") || len(a) != len("enrich:")+32 {
		t.Errorf("GenerateKey() = %q, want enrich:<32 hex>", a)
	}
}
