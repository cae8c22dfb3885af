// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/lib/pq"
	dbi "github.com/qolzam/telar-blog/internal/database/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConnectionString(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		got := buildConnectionString(&dbi.PostgreSQLConfig{
			Host:           "db",
			Port:           5433,
			Username:       "blog",
			Password:       "secret",
			Database:       "blog_test",
			SSLMode:        "require",
			ConnectTimeout: 5,
		})
		assert.Equal(t, "host=db port=5433 dbname=blog_test user=blog password=secret sslmode=require connect_timeout=5", got)
	})

	t.Run("defaults sslmode and omits empty credentials", func(t *testing.T) {
		got := buildConnectionString(&dbi.PostgreSQLConfig{Host: "localhost", Port: 5432, Database: "blog"})
		assert.Equal(t, "host=localhost port=5432 dbname=blog sslmode=disable", got)
	})
}

func TestClient_HealthCheck(t *testing.T) {
	if os.Getenv("RUN_DB_TESTS") != "1" {
		t.Skip("set RUN_DB_TESTS=1 to run PostgreSQL integration tests")
	}
	ctx := context.Background()

	client, err := NewClient(ctx, &dbi.PostgreSQLConfig{
		Host:               "localhost",
		Port:               5432,
		Username:           "postgres",
		Password:           "postgres",
		Database:           "blog_test",
		MaxOpenConnections: 5,
		ConnectTimeout:     10,
	})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.HealthCheck(ctx))
	assert.Equal(t, dbi.DatabaseTypePostgreSQL, client.Dialect())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}
