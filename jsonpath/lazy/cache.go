package lazy

import (
	"sync"
	"time"
)

const (
	maxCacheSize    = 100
	cacheCleanupAge = 5 * time.Minute
)

// cache memoizes filter-expression evaluations keyed by the candidate's
// path prefix and the filter expression text, so a generator that is
// reset() and replayed over the same source does not re-evaluate
// identical predicates. It survives Reset and Terminate; a fresh
// Generator starts with an empty one. Cleanup is check-on-operation: there is no background
// goroutine, only an age check performed opportunistically on Get/Put.
type cache struct {
	mu          sync.Mutex
	entries     map[string]cacheEntry
	order       []string
	lastCleanup time.Time
	hits        int
	misses      int
}

type cacheEntry struct {
	result   bool
	storedAt time.Time
}

func newCache() *cache {
	return &cache{entries: make(map[string]cacheEntry), lastCleanup: time.Now()}
}

func cacheKey(prefix, expr string) string {
	return prefix + "\x00" + expr
}

func (c *cache) get(prefix, expr string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupLocked()
	e, ok := c.entries[cacheKey(prefix, expr)]
	if ok {
		c.hits++
		return e.result, true
	}
	c.misses++
	return false, false
}

func (c *cache) put(prefix, expr string, result bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupLocked()
	key := cacheKey(prefix, expr)
	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= maxCacheSize {
			evict := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, evict)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{result: result, storedAt: time.Now()}
}

func (c *cache) cleanupLocked() {
	if time.Since(c.lastCleanup) < cacheCleanupAge {
		return
	}
	c.lastCleanup = time.Now()
	cutoff := time.Now().Add(-cacheCleanupAge)
	kept := c.order[:0]
	for _, k := range c.order {
		if e, ok := c.entries[k]; ok && e.storedAt.After(cutoff) {
			kept = append(kept, k)
		} else {
			delete(c.entries, k)
		}
	}
	c.order = kept
}

// Stats reports the cache's current size and cumulative hit/miss counts.
func (c *cache) Stats() (size, hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries), c.hits, c.misses
}

// Clear empties the cache and zeroes its statistics.
func (c *cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	c.order = nil
	c.hits, c.misses = 0, 0
}
