package cache

import (
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewCache creates the backend named by config.Backend.
// The redis backend requires a connected client.
func NewCache(config *CacheConfig, client redis.UniversalClient) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Backend {
	case CacheTypeMemory:
		return NewMemoryCache(config), nil
	case CacheTypeRedis:
		return NewRedisCache(client)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCacheType, config.Backend)
	}
}
