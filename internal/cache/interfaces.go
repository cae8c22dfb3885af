package cache

import (
	"context"
	"errors"
	"time"

	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
)

// Cache defines the byte-level cache backend contract
type Cache interface {
	// Get retrieves a value from cache by key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache by key
	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching the given glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Close releases resources owned by the backend
	Close() error

	// Stats returns cache statistics
	Stats() CacheStats
}

// CacheConfig holds configuration for cache instances
type CacheConfig struct {
	Enabled         bool          `json:"enabled"`
	TTL             time.Duration `json:"ttl"`
	Prefix          string        `json:"prefix"`
	Backend         CacheType     `json:"backend"`
	MaxMemory       int64         `json:"max_memory"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
	WarmInterval    time.Duration `json:"warm_interval"`
}

// CacheStats provides cache performance statistics
type CacheStats struct {
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRatio    float64 `json:"hit_ratio"`
	Keys        int64   `json:"keys"`
	MemoryUsage int64   `json:"memory_usage"`
	Evictions   int64   `json:"evictions"`
}

// Common cache errors
var (
	ErrKeyNotFound           = errors.New("key not found")
	ErrCacheUnavailable      = errors.New("cache unavailable")
	ErrInvalidCacheType      = errors.New("invalid cache type")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrSerializationFailed   = errors.New("serialization failed")
	ErrDeserializationFailed = errors.New("deserialization failed")
)

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Enabled:         true,
		TTL:             time.Minute,
		Prefix:          "blog:",
		Backend:         CacheTypeMemory,
		MaxMemory:       32 * 1024 * 1024,
		CleanupInterval: 5 * time.Minute,
	}
}

// ConfigFromPlatform maps the CACHE_* settings onto a CacheConfig
func ConfigFromPlatform(c platformconfig.CacheConfig) *CacheConfig {
	return &CacheConfig{
		Enabled:         c.Enabled,
		TTL:             c.TTL,
		Prefix:          c.Prefix,
		Backend:         CacheType(c.Backend),
		MaxMemory:       c.MaxMemory,
		CleanupInterval: c.CleanupInterval,
		WarmInterval:    c.WarmInterval,
	}
}

// CacheType represents different cache backend types
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// IsValid checks if the cache type is valid
func (ct CacheType) IsValid() bool {
	switch ct {
	case CacheTypeMemory, CacheTypeRedis:
		return true
	default:
		return false
	}
}
