package adapters

import (
	"context"
	"fmt"

	"github.com/qolzam/telar-blog/internal/pkg/log"
	sharedInterfaces "github.com/qolzam/telar-blog/shared/interfaces"
	"github.com/qolzam/telar-blog/views/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// Ensure GrpcIncrementer implements PostViewIncrementer interface
var _ sharedInterfaces.PostViewIncrementer = (*GrpcIncrementer)(nil)

// GrpcIncrementer is an adapter that implements PostViewIncrementer
// by making gRPC calls to the view counter.
// Used when the counter runs as a separate service.
type GrpcIncrementer struct {
	client rpc.ViewServiceClient
	conn   *grpc.ClientConn
}

// NewGrpcIncrementer dials targetAddress. Extra dial options are appended to the defaults.
func NewGrpcIncrementer(targetAddress string, opts ...grpc.DialOption) (*GrpcIncrementer, error) {
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(targetAddress, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create view counter client for %s: %w", targetAddress, err)
	}

	return &GrpcIncrementer{
		client: rpc.NewViewServiceClient(conn),
		conn:   conn,
	}, nil
}

// Close closes the gRPC connection.
func (a *GrpcIncrementer) Close() error {
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

// IncrementPostView makes a gRPC call to count one view.
// The request id in ctx, if any, is forwarded as x-request-id metadata.
func (a *GrpcIncrementer) IncrementPostView(ctx context.Context, postID string) error {
	if requestID := log.RequestIDFrom(ctx); requestID != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-request-id", requestID)
	}

	resp, err := a.client.IncrementPostView(ctx, &rpc.IncrementPostViewRequest{PostId: postID})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("view counter reported failure for post %s", postID)
	}
	return nil
}
