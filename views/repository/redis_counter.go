package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// incrementIfExists raises the views field only when the post hash already exists
var incrementIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("HINCRBY", KEYS[1], "views", 1)
end
return false
`)

// redisCounter keeps each post as a hash under prefix+postID with a views field
type redisCounter struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCounter creates a ViewCounter on Redis
func NewRedisCounter(client redis.UniversalClient, prefix string) ViewCounter {
	return &redisCounter{client: client, prefix: prefix}
}

func (r *redisCounter) key(postID string) string {
	return r.prefix + postID
}

// IncrementViews runs the check and the increment as one script
func (r *redisCounter) IncrementViews(ctx context.Context, postID string) error {
	_, err := incrementIfExists.Run(ctx, r.client, []string{r.key(postID)}).Int64()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, postID)
	}
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// RegisterPost creates the post hash with an initial views value, leaving an existing one untouched
func (r *redisCounter) RegisterPost(ctx context.Context, postID string, views int64) error {
	if err := r.client.HSetNX(ctx, r.key(postID), "views", views).Err(); err != nil {
		return fmt.Errorf("failed to register post %s: %w", postID, err)
	}
	return nil
}

// Views reads the current counter of postID
func (r *redisCounter) Views(ctx context.Context, postID string) (int64, error) {
	views, err := r.client.HGet(ctx, r.key(postID), "views").Int64()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("%w: %s", ErrRecordNotFound, postID)
	}
	return views, err
}

var _ PostRegistrar = (*redisCounter)(nil)
