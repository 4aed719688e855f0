package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(1 * time.Hour)

	c.Set("k", "value")

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Expected hit immediately after Set")
	}
	if got.(string) != "value" {
		t.Errorf("Expected 'value', got %v", got)
	}

	// Overwrite replaces the entry wholesale.
	c.Set("k", 42)
	got, ok = c.Get("k")
	if !ok {
		t.Fatal("Expected hit after overwrite")
	}
	if got.(int) != 42 {
		t.Errorf("Expected 42 after overwrite, got %v", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(1 * time.Hour)

	if _, ok := c.Get("absent"); ok {
		t.Error("Expected miss for absent key")
	}

	stats := c.GetStats()
	if stats.MissCount != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.MissCount)
	}
	if stats.HitCount != 0 {
		t.Errorf("Expected 0 hits, got %d", stats.HitCount)
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New(50 * time.Millisecond)

	c.Set("k", "value")
	if _, ok := c.Get("k"); !ok {
		t.Fatal("Expected hit before expiry")
	}

	time.Sleep(100 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after expiry")
	}
	// Expired read evicts the entry.
	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be evicted on access, %d entries remain", c.Len())
	}
}

func TestCacheClear(t *testing.T) {
	c := New(1 * time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d entries", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Expected miss after Clear")
	}
}

func TestCacheCleanupExpired(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.Set("old1", 1)
	c.Set("old2", 2)

	time.Sleep(100 * time.Millisecond)
	c.Set("fresh", 3)

	removed := c.CleanupExpired()
	if removed != 2 {
		t.Errorf("Expected 2 expired entries removed, got %d", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 remaining entry, got %d", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("Expected fresh entry to survive cleanup")
	}
}

func TestCacheIndependentKeys(t *testing.T) {
	c := New(1 * time.Hour)

	c.Set("all_news", []string{"a"})
	c.Set("trending_news", []string{"b"})

	// Overwriting one key must not touch the other.
	c.Set("all_news", []string{"c"})

	got, ok := c.Get("trending_news")
	if !ok {
		t.Fatal("Expected trending_news to survive all_news overwrite")
	}
	if got.([]string)[0] != "b" {
		t.Errorf("Expected untouched value 'b', got %v", got)
	}
}

func TestCacheStats(t *testing.T) {
	c := New(1 * time.Hour)
	c.Set("k", "v")

	c.Get("k")
	c.Get("k")
	c.Get("missing")

	stats := c.GetStats()
	if stats.HitCount != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.HitCount)
	}
	if stats.MissCount != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.MissCount)
	}
	if stats.Entries != 1 {
		t.Errorf("Expected 1 entry, got %d", stats.Entries)
	}
	if stats.HitRate < 0.66 || stats.HitRate > 0.67 {
		t.Errorf("Expected hit rate ~0.667, got %f", stats.HitRate)
	}
}
