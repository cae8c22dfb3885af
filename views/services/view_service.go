package services

import (
	"context"

	"github.com/qolzam/telar-blog/internal/pkg/log"
	viewsErrors "github.com/qolzam/telar-blog/views/errors"
	"github.com/qolzam/telar-blog/views/models"
	"github.com/qolzam/telar-blog/views/repository"
	"github.com/qolzam/telar-blog/views/validation"
)

// viewService implements ViewService. It holds no per-call state.
type viewService struct {
	counter repository.ViewCounter
}

// NewViewService creates a view service on counter
func NewViewService(counter repository.ViewCounter) ViewService {
	return &viewService{counter: counter}
}

// Increment validates postID and applies exactly one atomic increment.
// There is no retry; a caller retrying after a lost response may count twice.
func (s *viewService) Increment(ctx context.Context, postID string) (*models.IncrementResult, error) {
	if err := validation.ValidatePostID(postID); err != nil {
		log.WarnWithContext(ctx, "incrementPostView rejected: %v", err)
		return nil, err
	}

	if err := s.counter.IncrementViews(ctx, postID); err != nil {
		log.ErrorWithContext(ctx, "incrementPostView failed for post %s: %v", postID, err)
		return nil, viewsErrors.Internal(viewsErrors.MsgUpdateFailed, err)
	}

	log.InfoWithContext(ctx, "Incremented views for post %s", postID)
	return &models.IncrementResult{Success: true, PostID: postID}, nil
}
