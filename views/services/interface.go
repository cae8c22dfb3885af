package services

import (
	"context"

	"github.com/qolzam/telar-blog/views/models"
)

// ViewService counts post views
type ViewService interface {
	// Increment raises the views counter of postID by one.
	// Errors are *errors.CallableError with code InvalidArgument or Internal.
	Increment(ctx context.Context, postID string) (*models.IncrementResult, error)
}
