// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"

	dbi "github.com/qolzam/telar-blog/internal/database/interfaces"
)

// sqlCounter increments the views column of the posts table
type sqlCounter struct {
	client dbi.SQLClient
}

// NewSQLCounter creates a ViewCounter on a PostgreSQL or SQLite client
func NewSQLCounter(client dbi.SQLClient) ViewCounter {
	return &sqlCounter{client: client}
}

// IncrementViews runs a single UPDATE so concurrent calls never lose an increment
func (r *sqlCounter) IncrementViews(ctx context.Context, postID string) error {
	db := r.client.DB()
	query := db.Rebind(`UPDATE posts SET views = views + 1 WHERE id = ?`)

	result, err := db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, postID)
	}
	return nil
}
