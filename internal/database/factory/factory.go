// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package factory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	dbi "github.com/qolzam/telar-blog/internal/database/interfaces"
	"github.com/qolzam/telar-blog/internal/database/postgres"
	"github.com/qolzam/telar-blog/internal/database/redisdb"
	"github.com/qolzam/telar-blog/internal/database/sqlite"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
)

// ErrProviderClosed is returned once Close has been called
var ErrProviderClosed = errors.New("store provider is closed")

// Provider owns the process-scoped store handles.
// Each handle is opened on first use and reused by every later caller.
// Only a successful open is kept; after a failure the next call opens again.
type Provider struct {
	cfg *platformconfig.Config

	mu          sync.Mutex
	sqlClient   dbi.SQLClient
	redisClient redis.UniversalClient
	closed      bool
}

// NewProvider creates a provider for the given configuration. Nothing is opened yet.
func NewProvider(cfg *platformconfig.Config) *Provider {
	return &Provider{cfg: cfg}
}

// NewProviderWithClients wraps handles that were opened elsewhere.
// Either client may be nil.
func NewProviderWithClients(sqlClient dbi.SQLClient, redisClient redis.UniversalClient) *Provider {
	return &Provider{sqlClient: sqlClient, redisClient: redisClient}
}

// SQL returns the shared SQL client, opening it if no open has succeeded yet
func (p *Provider) SQL(ctx context.Context) (dbi.SQLClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrProviderClosed
	}
	if p.sqlClient != nil {
		return p.sqlClient, nil
	}

	client, err := p.openSQL(ctx)
	if err != nil {
		return nil, err
	}
	p.sqlClient = client
	return client, nil
}

// Redis returns the shared Redis client, opening it if no open has succeeded yet
func (p *Provider) Redis(ctx context.Context) (redis.UniversalClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrProviderClosed
	}
	if p.redisClient != nil {
		return p.redisClient, nil
	}
	if p.cfg == nil {
		return nil, fmt.Errorf("redis is not configured")
	}

	r := p.cfg.Cache.Redis
	client, err := redisdb.NewClient(ctx, &dbi.RedisConfig{
		Address:      r.Address,
		Password:     r.Password,
		Database:     r.Database,
		PoolSize:     r.PoolSize,
		MinIdleConns: r.MinIdleConns,
		MaxConnAge:   r.MaxConnAge,
	})
	if err != nil {
		return nil, err
	}
	p.redisClient = client
	return client, nil
}

func (p *Provider) openSQL(ctx context.Context) (dbi.SQLClient, error) {
	if p.cfg == nil {
		return nil, fmt.Errorf("database is not configured")
	}
	db := p.cfg.Database

	switch db.Type {
	case platformconfig.DatabaseTypePostgreSQL:
		client, err := postgres.NewClient(ctx, &dbi.PostgreSQLConfig{
			Host:               db.Postgres.Host,
			Port:               db.Postgres.Port,
			Username:           db.Postgres.Username,
			Password:           db.Postgres.Password,
			Database:           db.Postgres.Database,
			SSLMode:            db.Postgres.SSLMode,
			ConnectTimeout:     10,
			MaxOpenConnections: db.Postgres.MaxOpenConns,
			MaxIdleConnections: db.Postgres.MaxIdleConns,
			MaxLifetime:        int(db.Postgres.ConnMaxLifetime.Seconds()),
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case platformconfig.DatabaseTypeSQLite:
		client, err := sqlite.NewClient(ctx, &dbi.SQLiteConfig{Path: db.SQLite.Path})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", db.Type)
	}
}

// Close releases every handle that was opened. It is safe to call more than once.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	if p.sqlClient != nil {
		if err := p.sqlClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sql: %w", err))
		}
		p.sqlClient = nil
	}
	if p.redisClient != nil {
		if err := p.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
		p.redisClient = nil
	}
	return errors.Join(errs...)
}
