// Package cache memoizes expensive per-year queries. It is an auxiliary
// layer: every answer must be identical with the cache disabled, and the
// test suites run both ways.
package cache

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-chinacal/internal/clock"
	"github.com/tartampluch/go-chinacal/internal/config"
)

// Stats is a point-in-time snapshot of cache behavior.
type Stats struct {
	Entries int     `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Deletes int64   `json:"deletes"`
	HitRate float64 `json:"hit_rate"`
	Enabled bool    `json:"enabled"`
}

type entry struct {
	value   any
	expires time.Time
	touched atomic.Int64 // unix nanos of the last access, for LRU eviction
}

// Cache is a TTL-bounded memoization map. The hit path takes the read
// lock only; recency and the counters are atomics, so concurrent reads
// never block each other.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	maxSize int
	clock   clock.Clock
	enabled bool

	hits    atomic.Int64
	misses  atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64
}

// New builds an enabled cache with the given TTL.
func New(ttl time.Duration, clk clock.Clock) *Cache {
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		maxSize: config.DefaultCacheMaxSize,
		clock:   clk,
		enabled: true,
	}
}

// Disabled builds a cache that stores nothing, for tests and the
// --no-cache flag. Get always misses and Set is a no-op.
func Disabled() *Cache {
	return &Cache{entries: make(map[string]*entry), clock: clock.Real{}}
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	if !c.enabled {
		return nil, false
	}

	now := c.clock.Now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && now.Before(e.expires) {
		e.touched.Store(now.UnixNano())
		c.hits.Add(1)
		return e.value, true
	}

	if ok {
		c.mu.Lock()
		// The map may have moved on since the read lock: only drop the
		// entry we actually saw expire, never a concurrent replacement.
		if cur, still := c.entries[key]; still && cur == e {
			delete(c.entries, key)
			c.deletes.Add(1)
		}
		c.mu.Unlock()
	}
	c.misses.Add(1)
	return nil, false
}

// Set stores a value under key for the cache TTL. When the cache is full
// the least recently accessed entry is evicted first.
func (c *Cache) Set(key string, value any) {
	if !c.enabled {
		return
	}

	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		if _, exists := c.entries[key]; !exists {
			c.evictOldestLocked()
		}
	}

	e := &entry{value: value, expires: now.Add(c.ttl)}
	e.touched.Store(now.UnixNano())
	c.entries[key] = e
	c.sets.Add(1)
}

// Invalidate drops a single key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.deletes.Add(1)
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes.Add(int64(len(c.entries)))
	c.entries = make(map[string]*entry)
}

// Cleanup removes every expired entry and returns the count removed.
func (c *Cache) Cleanup() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
			removed++
		}
	}
	c.deletes.Add(int64(removed))
	return removed
}

// evictOldestLocked drops the least recently accessed entry. Caller holds
// the write lock.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldest int64
	first := true
	for key, e := range c.entries {
		if touched := e.touched.Load(); first || touched < oldest {
			oldestKey = key
			oldest = touched
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
		c.deletes.Add(1)
		slog.Debug(config.MsgCacheEvict,
			config.LogKeyComponent, config.CompCache,
			config.LogKeyKey, oldestKey,
		)
	}
}

// Stats snapshots the counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	entries := len(c.entries)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	rate := 0.0
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}

	return Stats{
		Entries: entries,
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Deletes: c.deletes.Load(),
		HitRate: rate,
		Enabled: c.enabled,
	}
}
