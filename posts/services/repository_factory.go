// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"

	"github.com/qolzam/telar-blog/internal/database/factory"
	"github.com/qolzam/telar-blog/posts/repository"
)

// NewPostRepositoryFromProvider creates a PostRepository on the provider's SQL client.
// The client is opened on first use and shared with every other repository.
func NewPostRepositoryFromProvider(ctx context.Context, provider *factory.Provider) (repository.PostRepository, error) {
	if provider == nil {
		return nil, fmt.Errorf("store provider is required")
	}

	client, err := provider.SQL(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open posts store: %w", err)
	}
	return repository.NewSQLRepository(client), nil
}
