package cache

import (
	"time"

	"mitienda-backend/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

// memoryCache backs the CacheService with an expiring in-process store. It
// holds catalog reads; nothing in it survives a restart, which is the point.
type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-memory cache.
// defaultExpiration: TTL applied when Set is called with 0
// cleanupInterval: how often expired entries are purged
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.store.Set(key, value, duration)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *memoryCache) Flush() {
	c.store.Flush()
}
