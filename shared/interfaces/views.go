package interfaces

import "context"

// PostViewIncrementer is the public interface for counting a post view.
// Callers depend on it instead of the views service, so the counter can be reached
// either in-process (DirectCallIncrementer) or over gRPC (GrpcIncrementer).
type PostViewIncrementer interface {
	IncrementPostView(ctx context.Context, postID string) error
}
