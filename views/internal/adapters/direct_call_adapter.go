package adapters

import (
	"context"

	sharedInterfaces "github.com/qolzam/telar-blog/shared/interfaces"
	"github.com/qolzam/telar-blog/views/services"
)

// Ensure DirectCallIncrementer implements PostViewIncrementer interface
var _ sharedInterfaces.PostViewIncrementer = (*DirectCallIncrementer)(nil)

// DirectCallIncrementer is an adapter that implements PostViewIncrementer
// by calling the view service in-process.
// Used when the counter runs inside the same binary.
type DirectCallIncrementer struct {
	service services.ViewService
}

// NewDirectCallIncrementer creates a new DirectCallIncrementer adapter.
func NewDirectCallIncrementer(svc services.ViewService) *DirectCallIncrementer {
	return &DirectCallIncrementer{service: svc}
}

// IncrementPostView delegates to the view service.
func (a *DirectCallIncrementer) IncrementPostView(ctx context.Context, postID string) error {
	_, err := a.service.Increment(ctx, postID)
	return err
}
