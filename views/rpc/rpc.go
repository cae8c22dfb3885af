// Package rpc defines the gRPC contract of the view counter.
// Messages travel as JSON through a codec registered under the "json" content-subtype.
package rpc

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// Service and method names
const (
	ServiceName             = "blog.views.v1.ViewService"
	IncrementPostViewMethod = "/" + ServiceName + "/IncrementPostView"
)

// CodecName is the content-subtype clients must request
const CodecName = "json"

// IncrementPostViewRequest carries the post to count
type IncrementPostViewRequest struct {
	PostId string `json:"postId"`
}

// IncrementPostViewResponse reports a counted view
type IncrementPostViewResponse struct {
	Success bool   `json:"success"`
	PostId  string `json:"postId"`
}

type jsonCodec struct {
	api jsoniter.API
}

func (c jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return c.api.Marshal(v)
}

func (c jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return c.api.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{api: jsoniter.ConfigCompatibleWithStandardLibrary})
}

// ViewServiceServer is implemented by the view counter server
type ViewServiceServer interface {
	IncrementPostView(ctx context.Context, req *IncrementPostViewRequest) (*IncrementPostViewResponse, error)
}

func incrementPostViewHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IncrementPostViewRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ViewServiceServer).IncrementPostView(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: IncrementPostViewMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ViewServiceServer).IncrementPostView(ctx, req.(*IncrementPostViewRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ViewServiceDesc describes the service for grpc.Server.RegisterService
var ViewServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ViewServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "IncrementPostView",
			Handler:    incrementPostViewHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blog/views/v1/views.json",
}

// RegisterViewServiceServer registers srv on s
func RegisterViewServiceServer(s grpc.ServiceRegistrar, srv ViewServiceServer) {
	s.RegisterService(&ViewServiceDesc, srv)
}

// ViewServiceClient calls the view counter
type ViewServiceClient interface {
	IncrementPostView(ctx context.Context, in *IncrementPostViewRequest, opts ...grpc.CallOption) (*IncrementPostViewResponse, error)
}

type viewServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewViewServiceClient creates a client on cc that always uses the JSON codec
func NewViewServiceClient(cc grpc.ClientConnInterface) ViewServiceClient {
	return &viewServiceClient{cc: cc}
}

func (c *viewServiceClient) IncrementPostView(ctx context.Context, in *IncrementPostViewRequest, opts ...grpc.CallOption) (*IncrementPostViewResponse, error) {
	out := new(IncrementPostViewResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, IncrementPostViewMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
