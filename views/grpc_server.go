package views

import (
	"context"

	"github.com/qolzam/telar-blog/internal/pkg/log"
	viewsErrors "github.com/qolzam/telar-blog/views/errors"
	"github.com/qolzam/telar-blog/views/rpc"
	"github.com/qolzam/telar-blog/views/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// grpcServer implements rpc.ViewServiceServer.
type grpcServer struct {
	service services.ViewService
}

// NewGrpcServer creates a new gRPC server for the view counter.
func NewGrpcServer(svc services.ViewService) rpc.ViewServiceServer {
	return &grpcServer{service: svc}
}

// RegisterGrpcServer registers the view counter on s.
func RegisterGrpcServer(s grpc.ServiceRegistrar, svc services.ViewService) {
	rpc.RegisterViewServiceServer(s, NewGrpcServer(svc))
}

// IncrementPostView is the implementation of the gRPC endpoint.
func (s *grpcServer) IncrementPostView(ctx context.Context, req *rpc.IncrementPostViewRequest) (*rpc.IncrementPostViewResponse, error) {
	if req == nil {
		req = &rpc.IncrementPostViewRequest{}
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get("x-request-id"); len(ids) > 0 {
			ctx = log.WithRequestID(ctx, ids[0])
		}
	}

	result, err := s.service.Increment(ctx, req.PostId)
	if err != nil {
		return nil, viewsErrors.ToStatus(err)
	}
	return &rpc.IncrementPostViewResponse{Success: result.Success, PostId: result.PostID}, nil
}
