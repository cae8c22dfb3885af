package services

import (
	"testing"
	"time"

	"github.com/qolzam/telar-blog/internal/cache"
)

// CacheTestHelper provides isolated cache instances for testing
type CacheTestHelper struct {
	memCache     cache.Cache
	cacheConfig  *cache.CacheConfig
	cacheService *cache.GenericCacheService
}

// NewCacheTestHelper creates a new isolated cache test helper and closes it when t ends
func NewCacheTestHelper(t *testing.T) *CacheTestHelper {
	t.Helper()

	cacheConfig := cache.DefaultCacheConfig()
	cacheConfig.Enabled = true
	cacheConfig.Prefix = "posts_test_" + generateTestID()
	cacheConfig.TTL = time.Hour
	cacheConfig.MaxMemory = 10 * 1024 * 1024

	memCache := cache.NewMemoryCache(cacheConfig)
	h := &CacheTestHelper{
		memCache:     memCache,
		cacheConfig:  cacheConfig,
		cacheService: cache.NewGenericCacheService(memCache, cacheConfig),
	}
	t.Cleanup(h.Cleanup)
	return h
}

// GetCacheService returns the isolated cache service
func (h *CacheTestHelper) GetCacheService() *cache.GenericCacheService {
	return h.cacheService
}

// GetMemoryCache returns the isolated memory cache instance
func (h *CacheTestHelper) GetMemoryCache() cache.Cache {
	return h.memCache
}

// Cleanup closes the cache instance
func (h *CacheTestHelper) Cleanup() {
	if h.memCache != nil {
		h.memCache.Close()
	}
}

func generateTestID() string {
	return time.Now().Format("20060102150405.000000000")
}
