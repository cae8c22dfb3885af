package services

import (
	"context"

	"github.com/qolzam/telar-blog/posts/models"
)

// PostService defines the interface for post operations
type PostService interface {
	// Create operations
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)

	// Read operations
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPosts(ctx context.Context, query *models.ListPostsQuery) (*models.PostsListResponse, error)
	ListPostsByCategory(ctx context.Context, name string, limit int) (*models.PostsListResponse, error)
	ListPostsByLabel(ctx context.Context, name string, limit int) (*models.PostsListResponse, error)

	// Taxonomy
	ListCategories(ctx context.Context) ([]string, error)
	ListLabels(ctx context.Context) ([]string, error)
}
