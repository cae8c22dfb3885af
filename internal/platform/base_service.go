// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/qolzam/telar-blog/internal/cache"
	dbi "github.com/qolzam/telar-blog/internal/database/interfaces"
	"github.com/qolzam/telar-blog/internal/database/factory"
	"github.com/qolzam/telar-blog/internal/database/migrations"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	viewsRepository "github.com/qolzam/telar-blog/views/repository"
)

// BaseService owns the stores shared by every module of the API
type BaseService struct {
	Provider *factory.Provider
	SQL      dbi.SQLClient
	Cache    *cache.GenericCacheService

	config *platformconfig.Config
}

// ServiceOptions tunes how NewBaseService brings the stores up
type ServiceOptions struct {
	Migrate    bool
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultServiceOptions migrates on start and retries the first connection three times
func DefaultServiceOptions() ServiceOptions {
	return ServiceOptions{Migrate: true, MaxRetries: 3, RetryDelay: time.Second}
}

// NewBaseService opens the SQL store, optionally migrates it and builds the read cache
func NewBaseService(ctx context.Context, cfg *platformconfig.Config, opts ServiceOptions) (*BaseService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("platform configuration is required")
	}

	s := &BaseService{
		Provider: factory.NewProvider(cfg),
		config:   cfg,
	}

	var client dbi.SQLClient
	err := ExecuteWithRetry(ctx, opts.MaxRetries, opts.RetryDelay, func() error {
		c, err := s.Provider.SQL(ctx)
		if err != nil {
			return err
		}
		client = c
		return c.HealthCheck(ctx)
	})
	if err != nil {
		s.Provider.Close()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Database.Type, err)
	}
	s.SQL = client

	if opts.Migrate {
		if err := migrations.Apply(ctx, client); err != nil {
			s.Provider.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	cacheService, err := s.buildCache(ctx)
	if err != nil {
		s.Provider.Close()
		return nil, err
	}
	s.Cache = cacheService
	warnViewStore(cfg)

	return s, nil
}

// warnViewStore flags the one combination where listings and counts diverge:
// Redis keeps the counter, while trending order reads the SQL views column.
func warnViewStore(cfg *platformconfig.Config) {
	if cfg.Views.Store != platformconfig.ViewsStoreRedis {
		return
	}
	log.Warn("VIEWS_STORE=redis: views are counted in Redis only; sort=trending orders by the SQL views column and will not reflect new views")
}

func (s *BaseService) buildCache(ctx context.Context) (*cache.GenericCacheService, error) {
	cacheConfig := cache.ConfigFromPlatform(s.config.Cache)
	if !cacheConfig.Enabled {
		return cache.NewGenericCacheService(nil, cacheConfig), nil
	}

	var backend cache.Cache
	var err error
	if cacheConfig.Backend == cache.CacheTypeRedis {
		redisClient, redisErr := s.Provider.Redis(ctx)
		if redisErr != nil {
			return nil, fmt.Errorf("failed to connect cache backend: %w", redisErr)
		}
		backend, err = cache.NewCache(cacheConfig, redisClient)
	} else {
		backend, err = cache.NewCache(cacheConfig, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return cache.NewGenericCacheService(backend, cacheConfig), nil
}

// ViewCounter returns the counter selected by VIEWS_STORE
func (s *BaseService) ViewCounter(ctx context.Context) (viewsRepository.ViewCounter, error) {
	switch s.config.Views.Store {
	case platformconfig.ViewsStoreRedis:
		client, err := s.Provider.Redis(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to connect view store: %w", err)
		}
		return viewsRepository.NewRedisCounter(client, s.config.Views.KeyPrefix), nil
	default:
		return viewsRepository.NewSQLCounter(s.SQL), nil
	}
}

// ExecuteWithRetry runs fn until it succeeds or maxRetries extra attempts have failed.
// The delay doubles after every failure.
func ExecuteWithRetry(ctx context.Context, maxRetries int, delay time.Duration, fn func() error) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if i == maxRetries {
			break
		}
		log.Warn("attempt %d/%d failed: %v", i+1, maxRetries+1, lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, lastErr)
}

// HealthCheck pings the SQL store
func (s *BaseService) HealthCheck(ctx context.Context) error {
	return s.SQL.HealthCheck(ctx)
}

// Close releases the cache and every store handle
func (s *BaseService) Close() error {
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			log.Error("failed to close cache: %v", err)
		}
	}
	return s.Provider.Close()
}

// GetConfig returns the platform configuration
func (s *BaseService) GetConfig() *platformconfig.Config {
	return s.config
}
