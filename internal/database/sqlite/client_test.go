package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	dbi "github.com/qolzam/telar-blog/internal/database/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Memory(t *testing.T) {
	ctx := context.Background()
	client, err := NewClient(ctx, &dbi.SQLiteConfig{Path: MemoryPath})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.HealthCheck(ctx))
	assert.Equal(t, dbi.DatabaseTypeSQLite, client.Dialect())

	db := client.DB()
	_, err = db.ExecContext(ctx, `CREATE TABLE t (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, db.Rebind(`INSERT INTO t (id) VALUES (?)`), "a")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, db.Rebind(`INSERT INTO t (id) VALUES (?)`), "a")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestNewClient_FileCreatesDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "blog.db")

	client, err := NewClient(ctx, &dbi.SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.HealthCheck(ctx))
	assert.FileExists(t, path)
}

func TestNewClient_RequiresPath(t *testing.T) {
	_, err := NewClient(context.Background(), &dbi.SQLiteConfig{Path: "  "})
	assert.Error(t, err)
}

func TestRebindKeepsQuestionMarks(t *testing.T) {
	client, err := NewClient(context.Background(), &dbi.SQLiteConfig{Path: MemoryPath})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "SELECT 1 WHERE a = ? AND b = ?", client.DB().Rebind("SELECT 1 WHERE a = ? AND b = ?"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("disk I/O error")))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: posts.slug")))
}
