package views

import (
	sharedInterfaces "github.com/qolzam/telar-blog/shared/interfaces"
	"github.com/qolzam/telar-blog/views/internal/adapters"
	"github.com/qolzam/telar-blog/views/services"
	"google.golang.org/grpc"
)

// NewDirectCallIncrementer creates an in-process adapter for single-binary deployments
func NewDirectCallIncrementer(service services.ViewService) sharedInterfaces.PostViewIncrementer {
	return adapters.NewDirectCallIncrementer(service)
}

// NewGrpcIncrementer creates a gRPC client adapter for a remote view counter.
// The returned close function releases the connection.
func NewGrpcIncrementer(targetAddress string, opts ...grpc.DialOption) (sharedInterfaces.PostViewIncrementer, func() error, error) {
	a, err := adapters.NewGrpcIncrementer(targetAddress, opts...)
	if err != nil {
		return nil, nil, err
	}
	return a, a.Close, nil
}
