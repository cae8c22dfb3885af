package testutil

import (
	"context"
	"os"
	"testing"

	dbi "github.com/qolzam/telar-blog/internal/database/interfaces"
	"github.com/qolzam/telar-blog/internal/database/factory"
	"github.com/qolzam/telar-blog/internal/database/migrations"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/stretchr/testify/require"
)

// IsolatedTest provides a migrated store for a single test.
// SQLite runs in memory and is private to the test; PostgreSQL needs RUN_DB_TESTS=1.
type IsolatedTest struct {
	t        *testing.T
	Config   *platformconfig.Config
	Provider *factory.Provider
	Client   dbi.SQLClient
}

// NewIsolatedTest opens the store for dbType, applies migrations and closes everything when t ends.
func NewIsolatedTest(t *testing.T, dbType string) *IsolatedTest {
	t.Helper()

	if dbType == platformconfig.DatabaseTypePostgreSQL && os.Getenv("RUN_DB_TESTS") != "1" {
		t.Skip("RUN_DB_TESTS not set, skipping database test")
	}

	cfg := LoadTestConfig().PlatformConfig(dbType)
	provider := factory.NewProvider(cfg)
	t.Cleanup(func() { provider.Close() })

	ctx := context.Background()
	client, err := provider.SQL(ctx)
	require.NoError(t, err, "failed to open %s store", dbType)
	require.NoError(t, migrations.Apply(ctx, client), "failed to migrate %s store", dbType)

	return &IsolatedTest{
		t:        t,
		Config:   cfg,
		Provider: provider,
		Client:   client,
	}
}

// Exec runs a statement written with ? placeholders against the store
func (iso *IsolatedTest) Exec(query string, args ...interface{}) {
	iso.t.Helper()
	db := iso.Client.DB()
	_, err := db.Exec(db.Rebind(query), args...)
	require.NoError(iso.t, err)
}

// Views returns the stored view count of a post
func (iso *IsolatedTest) Views(postID string) int64 {
	iso.t.Helper()
	db := iso.Client.DB()
	var views int64
	require.NoError(iso.t, db.Get(&views, db.Rebind(`SELECT views FROM posts WHERE id = ?`), postID))
	return views
}

// CountPosts returns the number of stored posts
func (iso *IsolatedTest) CountPosts() int {
	iso.t.Helper()
	var n int
	require.NoError(iso.t, iso.Client.DB().Get(&n, `SELECT COUNT(*) FROM posts`))
	return n
}
