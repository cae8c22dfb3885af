package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/qolzam/telar-blog/internal/cache"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	"github.com/qolzam/telar-blog/posts/common"
	postsErrors "github.com/qolzam/telar-blog/posts/errors"
	"github.com/qolzam/telar-blog/posts/models"
	"github.com/qolzam/telar-blog/posts/repository"
	"github.com/qolzam/telar-blog/posts/validation"
)

const (
	cacheKeyCategories = "taxonomy:categories"
	cacheKeyLabels     = "taxonomy:labels"
)

// postService implements the PostService interface
type postService struct {
	repo         repository.PostRepository
	cacheService *cache.GenericCacheService
}

// NewPostService creates a new instance of the post service.
// cacheService may be nil, in which case every read goes to the repository.
func NewPostService(repo repository.PostRepository, cacheService *cache.GenericCacheService) PostService {
	return &postService{
		repo:         repo,
		cacheService: cacheService,
	}
}

func (s *postService) cacheEnabled() bool {
	return s.cacheService != nil && s.cacheService.IsEnabled()
}

// listCacheKey generates the cache key for a post listing
func (s *postService) listCacheKey(filter models.PostFilter) string {
	return s.cacheService.GenerateHashKey("posts", map[string]interface{}{
		"category": filter.Category,
		"label":    filter.Label,
		"sort":     string(filter.Sort),
		"limit":    filter.Limit,
	})
}

// getCachedList fetches a cached listing, reporting whether it was found
func (s *postService) getCachedList(ctx context.Context, key string) (*models.PostsListResponse, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}
	var result models.PostsListResponse
	if err := s.cacheService.GetCached(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (s *postService) cacheResult(ctx context.Context, key string, data interface{}) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cacheService.CacheData(ctx, key, data); err != nil {
		log.WarnWithContext(ctx, "Failed to cache %s: %v", key, err)
	}
}

// invalidateAll drops every cached listing and taxonomy
func (s *postService) invalidateAll(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	for _, pattern := range []string{"posts:*", "taxonomy:*"} {
		if err := s.cacheService.InvalidatePattern(ctx, pattern); err != nil {
			log.WarnWithContext(ctx, "Failed to invalidate cache pattern %s: %v", pattern, err)
		}
	}
}

// CreatePost validates and stores a post. A missing slug is derived from the title.
func (s *postService) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post == nil {
		return nil, postsErrors.WrapValidationError(postsErrors.ErrInvalidPostData, "post is required")
	}

	post.ID = strings.TrimSpace(post.ID)
	post.Title = strings.TrimSpace(post.Title)
	if post.Slug == "" {
		post.Slug = common.Slugify(post.Title)
	}
	post.Categories = common.NormalizeNames(post.Categories)
	post.Labels = common.NormalizeNames(post.Labels)
	post.Views = 0

	if err := validation.ValidatePost(post); err != nil {
		return nil, postsErrors.WrapValidationError(postsErrors.ErrValidationFailed, err.Error())
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if errors.Is(err, postsErrors.ErrPostAlreadyExists) {
			return nil, err
		}
		log.ErrorWithContext(ctx, "Repository.Create failed for post %s: %v", post.ID, err)
		return nil, postsErrors.WrapDatabaseError(err)
	}

	s.invalidateAll(ctx)
	return post, nil
}

// GetPost retrieves a post by id
func (s *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, postsErrors.ErrPostNotFound) {
			return nil, postsErrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// GetPostBySlug retrieves a post by its URL key
func (s *postService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if err := validation.ValidateSlug(slug); err != nil {
		return nil, postsErrors.ErrPostNotFound
	}
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, postsErrors.ErrPostNotFound) {
			return nil, postsErrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return post, nil
}

// ListPosts lists the latest or trending posts
func (s *postService) ListPosts(ctx context.Context, query *models.ListPostsQuery) (*models.PostsListResponse, error) {
	q := models.ListPostsQuery{}
	if query != nil {
		q = *query
	}
	if err := validation.NormalizeListQuery(&q); err != nil {
		return nil, postsErrors.WrapValidationError(postsErrors.ErrValidationFailed, err.Error())
	}
	return s.list(ctx, models.PostFilter{Sort: q.Sort, Limit: q.Limit})
}

// ListPostsByCategory lists the newest posts in a category
func (s *postService) ListPostsByCategory(ctx context.Context, name string, limit int) (*models.PostsListResponse, error) {
	filter, err := taxonomyFilter(name, limit)
	if err != nil {
		return nil, err
	}
	filter.Category = name
	return s.list(ctx, filter)
}

// ListPostsByLabel lists the newest posts carrying a label
func (s *postService) ListPostsByLabel(ctx context.Context, name string, limit int) (*models.PostsListResponse, error) {
	filter, err := taxonomyFilter(name, limit)
	if err != nil {
		return nil, err
	}
	filter.Label = name
	return s.list(ctx, filter)
}

func taxonomyFilter(name string, limit int) (models.PostFilter, error) {
	if err := validation.ValidateName(name); err != nil {
		return models.PostFilter{}, postsErrors.WrapValidationError(postsErrors.ErrValidationFailed, err.Error())
	}
	normalized, err := validation.NormalizeLimit(limit)
	if err != nil {
		return models.PostFilter{}, postsErrors.WrapValidationError(postsErrors.ErrValidationFailed, err.Error())
	}
	return models.PostFilter{Sort: models.SortLatest, Limit: normalized}, nil
}

// list serves a listing from cache, loading and caching it on a miss
func (s *postService) list(ctx context.Context, filter models.PostFilter) (*models.PostsListResponse, error) {
	var key string
	if s.cacheEnabled() {
		key = s.listCacheKey(filter)
		if cached, ok := s.getCachedList(ctx, key); ok {
			return cached, nil
		}
	}

	result, err := s.loadList(ctx, filter)
	if err != nil {
		return nil, err
	}

	if key != "" {
		s.cacheResult(ctx, key, result)
	}
	return result, nil
}

// loadList reads a listing straight from the repository
func (s *postService) loadList(ctx context.Context, filter models.PostFilter) (*models.PostsListResponse, error) {
	posts, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	summaries := make([]models.PostSummary, len(posts))
	for i, p := range posts {
		summaries[i] = p.Summary()
	}

	response := &models.PostsListResponse{
		Posts: summaries,
		Limit: filter.Limit,
	}
	if filter.Category == "" && filter.Label == "" {
		response.Sort = filter.Sort
	}
	return response, nil
}

// ListCategories returns all category names
func (s *postService) ListCategories(ctx context.Context) ([]string, error) {
	return s.names(ctx, cacheKeyCategories, s.repo.ListCategories)
}

// ListLabels returns all label names
func (s *postService) ListLabels(ctx context.Context) ([]string, error) {
	return s.names(ctx, cacheKeyLabels, s.repo.ListLabels)
}

func (s *postService) names(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if s.cacheEnabled() {
		var cached []string
		if err := s.cacheService.GetCached(ctx, key, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	names, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list names: %w", err)
	}
	if names == nil {
		names = []string{}
	}

	s.cacheResult(ctx, key, names)
	return names, nil
}

// RegisterWarmingJobs keeps the home page listings and the taxonomy warm.
// The keys match the ones ListPosts, ListCategories and ListLabels read.
func RegisterWarmingJobs(warmer *cache.CacheWarmer, repo repository.PostRepository, cacheService *cache.GenericCacheService) {
	if warmer == nil || cacheService == nil {
		return
	}
	svc := &postService{repo: repo, cacheService: cacheService}

	for _, sort := range []models.SortOrder{models.SortLatest, models.SortTrending} {
		filter := models.PostFilter{Sort: sort, Limit: models.DefaultListLimit}
		warmer.AddJob(svc.listCacheKey(filter), func(ctx context.Context) (interface{}, error) {
			return svc.loadList(ctx, filter)
		}, 0)
	}

	warmer.AddJob(cacheKeyCategories, func(ctx context.Context) (interface{}, error) {
		return repo.ListCategories(ctx)
	}, 0)
	warmer.AddJob(cacheKeyLabels, func(ctx context.Context) (interface{}, error) {
		return repo.ListLabels(ctx)
	}, 0)
}
