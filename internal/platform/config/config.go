package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported DB_TYPE values
const (
	DatabaseTypePostgreSQL = "postgresql"
	DatabaseTypeSQLite     = "sqlite"
)

// Supported VIEWS_STORE values
const (
	ViewsStoreSQL   = "sql"
	ViewsStoreRedis = "redis"
)

// Config is the root configuration for the blog API
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Views      ViewsConfig      `json:"views"`
	App        AppConfig        `json:"app"`
	Cache      CacheConfig      `json:"cache"`
	RateLimits RateLimitsConfig `json:"rateLimits"`
	Log        LogConfig        `json:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	GRPCPort        int           `json:"grpcPort"`
	BaseRoute       string        `json:"baseRoute"`
	Debug           bool          `json:"debug"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Type     string           `json:"type"`
	Postgres PostgreSQLConfig `json:"postgres"`
	SQLite   SQLiteConfig     `json:"sqlite"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path string `json:"path"`
}

// ViewsConfig selects the store that owns the view counter
type ViewsConfig struct {
	Store     string `json:"store"`
	KeyPrefix string `json:"keyPrefix"`
}

// AppConfig holds application-related configuration
type AppConfig struct {
	Name      string `json:"name"`
	WebDomain string `json:"webDomain"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	MaxMemory       int64         `json:"maxMemory"`
	TTL             time.Duration `json:"ttl"`
	Enabled         bool          `json:"enabled"`
	Backend         string        `json:"backend"`
	Prefix          string        `json:"prefix"`
	CleanupInterval time.Duration `json:"cleanupInterval"`
	WarmInterval    time.Duration `json:"warmInterval"`
	Redis           RedisConfig   `json:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address      string        `json:"address"`
	Password     string        `json:"password"`
	Database     int           `json:"database"`
	PoolSize     int           `json:"poolSize"`
	MinIdleConns int           `json:"minIdleConns"`
	MaxConnAge   time.Duration `json:"maxConnAge"`
}

// RateLimitConfig holds rate limiting configuration for a specific endpoint
type RateLimitConfig struct {
	Enabled  bool          `json:"enabled"`
	Max      int           `json:"max"`
	Duration time.Duration `json:"duration"`
}

// RateLimitsConfig holds rate limiting configuration for all endpoints
type RateLimitsConfig struct {
	Views RateLimitConfig `json:"views"`
}

// LogConfig holds log output configuration
type LogConfig struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays"`
}

// LoadFromEnv loads configuration from the environment.
// Precedence: explicit environment variables, then values from a .env file, then defaults.
func LoadFromEnv() (*Config, error) {
	// godotenv.Load never overrides variables that are already set.
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	var loadErr error
	for _, envPath := range envPaths {
		loadErr = godotenv.Load(envPath)
		if loadErr == nil {
			break
		}
	}

	if loadErr != nil {
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	config := build(os.Getenv)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadFromMap loads configuration from an in-memory map.
// Tests use it to exercise configuration logic without touching the process environment.
func LoadFromMap(envMap map[string]string) (*Config, error) {
	config := build(func(key string) string {
		return envMap[key]
	})
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func build(lookup func(string) string) *Config {
	e := envReader{lookup: lookup}

	return &Config{
		Server: ServerConfig{
			Host:            e.get("HOST", "0.0.0.0"),
			Port:            e.getInt("SERVER_PORT", 8080),
			GRPCPort:        e.getInt("GRPC_PORT", 9090),
			BaseRoute:       strings.TrimRight(e.get("BASE_ROUTE", "/api"), "/"),
			Debug:           e.getBool("DEBUG", false),
			ShutdownTimeout: e.getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Type: e.get("DB_TYPE", DatabaseTypeSQLite),
			Postgres: PostgreSQLConfig{
				Host:            e.get("POSTGRES_HOST", "localhost"),
				Port:            e.getInt("POSTGRES_PORT", 5432),
				Username:        e.get("POSTGRES_USERNAME", ""),
				Password:        e.get("POSTGRES_PASSWORD", ""),
				Database:        e.get("POSTGRES_DATABASE", "blog"),
				SSLMode:         e.get("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    e.getInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    e.getInt("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: time.Duration(e.getInt("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
			},
			SQLite: SQLiteConfig{
				Path: e.get("SQLITE_PATH", "./data/blog.db"),
			},
		},
		Views: ViewsConfig{
			Store:     e.get("VIEWS_STORE", ViewsStoreSQL),
			KeyPrefix: e.get("VIEWS_KEY_PREFIX", "posts:"),
		},
		App: AppConfig{
			Name:      e.get("APP_NAME", "Blog"),
			WebDomain: e.get("WEB_DOMAIN", "http://localhost:5173"),
		},
		Cache: CacheConfig{
			MaxMemory:       e.getInt64("CACHE_MAX_MEMORY", 32*1024*1024),
			TTL:             e.getDuration("CACHE_TTL", 1*time.Minute),
			Enabled:         e.getBool("CACHE_ENABLED", true),
			Backend:         e.get("CACHE_BACKEND", "memory"),
			Prefix:          e.get("CACHE_PREFIX", "blog:"),
			CleanupInterval: e.getDuration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
			WarmInterval:    e.getDuration("CACHE_WARM_INTERVAL", 30*time.Second),
			Redis: RedisConfig{
				Address:      e.get("REDIS_ADDRESS", "localhost:6379"),
				Password:     e.get("REDIS_PASSWORD", ""),
				Database:     e.getInt("REDIS_DATABASE", 0),
				PoolSize:     e.getInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: e.getInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxConnAge:   time.Duration(e.getInt("REDIS_MAX_CONN_AGE", 300)) * time.Second,
			},
		},
		RateLimits: RateLimitsConfig{
			Views: RateLimitConfig{
				Enabled:  e.getBool("RATE_LIMIT_VIEWS_ENABLED", true),
				Max:      e.getInt("RATE_LIMIT_VIEWS_MAX", 60),
				Duration: e.getDuration("RATE_LIMIT_VIEWS_DURATION", 1*time.Minute),
			},
		},
		Log: LogConfig{
			File:       e.get("LOG_FILE", ""),
			MaxSizeMB:  e.getInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: e.getInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: e.getInt("LOG_MAX_AGE_DAYS", 28),
		},
	}
}

// Validate validates the configuration for required fields
func (c *Config) Validate() error {
	var errors []string

	validDbTypes := []string{DatabaseTypePostgreSQL, DatabaseTypeSQLite}
	if !contains(validDbTypes, c.Database.Type) {
		errors = append(errors, fmt.Sprintf("DB_TYPE must be one of: %s", strings.Join(validDbTypes, ", ")))
	}

	if c.Database.Type == DatabaseTypeSQLite && strings.TrimSpace(c.Database.SQLite.Path) == "" {
		errors = append(errors, "SQLITE_PATH is required when DB_TYPE=sqlite")
	}

	validStores := []string{ViewsStoreSQL, ViewsStoreRedis}
	if !contains(validStores, c.Views.Store) {
		errors = append(errors, fmt.Sprintf("VIEWS_STORE must be one of: %s", strings.Join(validStores, ", ")))
	}

	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, c.Cache.Backend) {
		errors = append(errors, fmt.Sprintf("CACHE_BACKEND must be one of: %s", strings.Join(validBackends, ", ")))
	}

	if c.Server.Port <= 0 || c.Server.GRPCPort <= 0 {
		errors = append(errors, "SERVER_PORT and GRPC_PORT must be positive")
	}

	if c.RateLimits.Views.Enabled && c.RateLimits.Views.Max <= 0 {
		errors = append(errors, "RATE_LIMIT_VIEWS_MAX must be positive when rate limiting is enabled")
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

const redactedValue = "[REDACTED]"

// Redacted returns a copy with passwords masked, safe to write to logs
func (c *Config) Redacted() Config {
	out := *c
	if out.Database.Postgres.Password != "" {
		out.Database.Postgres.Password = redactedValue
	}
	if out.Cache.Redis.Password != "" {
		out.Cache.Redis.Password = redactedValue
	}
	return out
}

// envReader applies typed defaults on top of a key lookup
type envReader struct {
	lookup func(string) string
}

func (e envReader) get(key, defaultValue string) string {
	if value := e.lookup(key); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) getInt(key string, defaultValue int) int {
	if value := e.lookup(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e envReader) getInt64(key string, defaultValue int64) int64 {
	if value := e.lookup(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e envReader) getBool(key string, defaultValue bool) bool {
	if value := e.lookup(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func (e envReader) getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := e.lookup(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
