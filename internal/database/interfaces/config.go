// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package interfaces

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// Supported SQL dialects
const (
	DatabaseTypePostgreSQL = "postgresql"
	DatabaseTypeSQLite     = "sqlite"
)

// PostgreSQLConfig represents PostgreSQL specific configuration
type PostgreSQLConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	Database           string
	SSLMode            string
	ConnectTimeout     int
	MaxOpenConnections int
	MaxIdleConnections int
	MaxLifetime        int
}

// SQLiteConfig represents SQLite specific configuration
type SQLiteConfig struct {
	// Path is a file path or ":memory:"
	Path        string
	BusyTimeout int
}

// SQLClient is the handle repositories are built on.
// Both the PostgreSQL and the SQLite clients satisfy it.
type SQLClient interface {
	DB() *sqlx.DB
	Dialect() string
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
	HealthCheck(ctx context.Context) error
	Close() error
}

// RedisConfig represents Redis connection configuration
type RedisConfig struct {
	Address      string
	Password     string
	Database     int
	PoolSize     int
	MinIdleConns int
	MaxConnAge   time.Duration
}
