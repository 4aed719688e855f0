package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the expiry applied to every entry unless the cache is
// constructed with an explicit duration.
const DefaultTTL = 12 * time.Minute

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache is a process-wide key-value store with per-entry absolute
// expiry. Entries are immutable once stored: Set overwrites wholesale.
// Construct one per process (or per test) and inject it; there is no
// package-level instance.
type Cache struct {
	mutex     sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	hitCount  int64
	missCount int64
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Entries   int     `json:"total_entries"`
	HitCount  int64   `json:"hit_count"`
	MissCount int64   `json:"miss_count"`
	HitRate   float64 `json:"hit_rate"`
}

// New creates a cache whose entries expire ttl after they are written.
// A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get returns the stored value for key if present and not expired. An
// expired entry counts as a miss and is evicted on access.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	e, exists := c.entries[key]
	if !exists {
		c.missCount++
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		c.missCount++
		return nil, false
	}

	c.hitCount++
	return e.value, true
}

// Set stores value under key with expiry now+TTL, overwriting any
// prior entry.
func (c *Cache) Set(key string, value interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries and resets counters.
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]entry)
	c.hitCount = 0
	c.missCount = 0
}

// CleanupExpired proactively removes every currently-expired entry.
// Bounds memory when reads stop happening for some keys; Get already
// evicts lazily.
func (c *Cache) CleanupExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// GetStats returns cache statistics.
func (c *Cache) GetStats() Stats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	stats := Stats{
		Entries:   len(c.entries),
		HitCount:  c.hitCount,
		MissCount: c.missCount,
	}
	if total := c.hitCount + c.missCount; total > 0 {
		stats.HitRate = float64(c.hitCount) / float64(total)
	}
	return stats
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
