package cache

import "time"

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, duration time.Duration)
	Delete(key string)
	Flush()
}
