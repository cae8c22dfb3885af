// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"

	dbi "github.com/qolzam/telar-blog/internal/database/interfaces"
	"github.com/qolzam/telar-blog/internal/database/migrations"
	"github.com/qolzam/telar-blog/internal/database/sqlite"
)

// NewSQLiteRepositoryForTest opens an in-memory SQLite database, applies the schema and
// returns a repository on it. The caller closes the returned client.
func NewSQLiteRepositoryForTest(ctx context.Context) (PostRepository, dbi.SQLClient, error) {
	client, err := sqlite.NewClient(ctx, &dbi.SQLiteConfig{Path: sqlite.MemoryPath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if err := migrations.Apply(ctx, client); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return NewSQLRepository(client), client, nil
}
