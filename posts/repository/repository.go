// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/qolzam/telar-blog/posts/models"
)

// PostRepository defines the post-specific database operations.
// It knows what a Post is and how its taxonomy is stored, so services never build SQL.
type PostRepository interface {
	// Create inserts a post together with its categories and labels
	Create(ctx context.Context, post *models.Post) error

	// FindByID retrieves a post by its document id
	FindByID(ctx context.Context, id string) (*models.Post, error)

	// FindBySlug retrieves a post by its URL key
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)

	// Find lists posts matching the filter, ordered by filter.Sort
	Find(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)

	// ListCategories returns every category name in ascending order
	ListCategories(ctx context.Context) ([]string, error)

	// ListLabels returns every label name in ascending order
	ListLabels(ctx context.Context) ([]string, error)

	// WithTransaction runs fn inside one transaction
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
