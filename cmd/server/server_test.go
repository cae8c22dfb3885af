package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/qolzam/telar-blog/internal/testutil"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/qolzam/telar-blog/posts/models"
	"github.com/qolzam/telar-blog/views/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func newTestServer(t *testing.T) *server {
	t.Helper()
	cfg := testutil.LoadTestConfig().PlatformConfig(platformconfig.DatabaseTypeSQLite)
	s, err := newServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.base.Close() })
	return s
}

func TestServer_HTTPRoutes(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	data := []byte(`[{"id":"p1","title":"First Post","categories":["Go"],"contentUnits":[{"type":"text","content":"hi"}]}]`)
	summary, err := importPosts(ctx, mustPostService(t, s), nil, data)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Created)

	h := testutil.NewHTTPHelper(t, s.app)

	resp := h.NewRequest(http.MethodPost, "/api/views/incrementPostView", map[string]string{"postId": "p1"}).Send()
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var post models.Post
	resp = h.NewRequest(http.MethodGet, "/api/posts/p1", nil).SendJSON(&post)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), post.Views)
	assert.Equal(t, "first-post", post.Slug)

	resp = h.NewRequest(http.MethodOptions, "/api/posts/", nil).
		WithHeader("Origin", s.cfg.App.WebDomain).
		WithHeader("Access-Control-Request-Method", http.MethodGet).
		Send()
	resp.Body.Close()
	assert.Equal(t, s.cfg.App.WebDomain, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_GRPCHealthAndViews(t *testing.T) {
	s := newTestServer(t)

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = s.grpc.Serve(lis) }()
	t.Cleanup(s.grpc.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	healthResp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: rpc.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, healthResp.Status)

	_, err = rpc.NewViewServiceClient(conn).IncrementPostView(ctx, &rpc.IncrementPostViewRequest{})
	assert.Error(t, err)
}
