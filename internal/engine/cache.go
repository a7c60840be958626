package engine

import (
	"time"

	lru "github.com/hashicorp/golang-lru"

	"mapstats/internal/models"
)

// queryCache is a TTL'd LRU over shaped chart payloads. Entries are keyed by
// the normalized query plus the store's freshness token, so a new scan cycle
// naturally invalidates every cached window that could include it.
type queryCache struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

type cacheEntry struct {
	data     *models.ChartData
	storedAt time.Time
}

func newQueryCache(size int, ttl time.Duration) *queryCache {
	if size < 1 {
		size = 1
	}
	cache, _ := lru.New(size)
	return &queryCache{cache: cache, ttl: ttl, now: time.Now}
}

func (c *queryCache) Get(key string) (*models.ChartData, bool) {
	value, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	entry := value.(cacheEntry)
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.cache.Remove(key)
		return nil, false
	}
	return entry.data, true
}

func (c *queryCache) Add(key string, data *models.ChartData) {
	c.cache.Add(key, cacheEntry{data: data, storedAt: c.now()})
}
