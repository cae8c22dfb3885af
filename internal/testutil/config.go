package testutil

import (
	"os"
	"regexp"
	"strconv"
	"time"

	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
)

// TestConfig holds environment-aware connection settings for integration tests.
type TestConfig struct {
	PGHost     string
	PGPort     int
	PGUser     string
	PGPassword string
	PGDatabase string
	RedisAddr  string
	BaseRoute  string
}

var postgresDSNPattern = regexp.MustCompile(`postgres://([^:]+):([^@]+)@([^:/]+):(\d+)/([^?]+)`)

// parsePostgresDSN reads POSTGRES_DSN, falling back to the individual POSTGRES_* variables.
func parsePostgresDSN() (host string, port int, user, password, database string) {
	host = getEnv("POSTGRES_HOST", "127.0.0.1")
	port = getEnvInt("POSTGRES_PORT", 5432)
	user = getEnv("POSTGRES_USERNAME", "postgres")
	password = getEnv("POSTGRES_PASSWORD", "postgres")
	database = getEnv("POSTGRES_DATABASE", "blog_test")

	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		if m := postgresDSNPattern.FindStringSubmatch(dsn); len(m) == 6 {
			user, password, host, database = m[1], m[2], m[3], m[5]
			if p, err := strconv.Atoi(m[4]); err == nil {
				port = p
			}
		}
	}
	return host, port, user, password, database
}

// LoadTestConfig loads configuration from environment
func LoadTestConfig() *TestConfig {
	host, port, user, password, database := parsePostgresDSN()
	return &TestConfig{
		PGHost:     host,
		PGPort:     port,
		PGUser:     user,
		PGPassword: password,
		PGDatabase: database,
		RedisAddr:  getEnv("REDIS_ADDRESS", "127.0.0.1:6379"),
		BaseRoute:  "/api",
	}
}

// PlatformConfig builds a platform config for dbType with caching off and rate limits relaxed.
func (tc *TestConfig) PlatformConfig(dbType string) *platformconfig.Config {
	cfg, err := platformconfig.LoadFromMap(map[string]string{
		"DB_TYPE":           dbType,
		"BASE_ROUTE":        tc.BaseRoute,
		"SQLITE_PATH":       ":memory:",
		"POSTGRES_HOST":     tc.PGHost,
		"POSTGRES_PORT":     strconv.Itoa(tc.PGPort),
		"POSTGRES_USERNAME": tc.PGUser,
		"POSTGRES_PASSWORD": tc.PGPassword,
		"POSTGRES_DATABASE": tc.PGDatabase,
		"REDIS_ADDRESS":     tc.RedisAddr,
		"CACHE_ENABLED":     "false",
	})
	if err != nil {
		panic(err)
	}
	cfg.RateLimits.Views.Max = 10000
	cfg.RateLimits.Views.Duration = time.Minute
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
