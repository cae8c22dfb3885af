package errors

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCallableError(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.3:5432: connection refused")
	err := Internal(MsgUpdateFailed, cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, codes.Internal, CodeOf(err))
	assert.Equal(t, codes.Internal, status.Code(err))

	wrapped := fmt.Errorf("increment: %w", InvalidArgument(MsgMissingPostID))
	assert.Equal(t, codes.InvalidArgument, CodeOf(wrapped))

	assert.Equal(t, codes.OK, CodeOf(nil))
	assert.Equal(t, codes.Internal, CodeOf(errors.New("plain")))
}

func TestNewEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantHTTP   int
		wantStatus string
		wantMsg    string
	}{
		{"invalid argument", InvalidArgument(MsgMissingPostID), http.StatusBadRequest, "INVALID_ARGUMENT", MsgMissingPostID},
		{"internal hides cause", Internal(MsgUpdateFailed, errors.New("secret detail")), http.StatusInternalServerError, "INTERNAL", MsgUpdateFailed},
		{"plain error is internal", errors.New("pq: boom"), http.StatusInternalServerError, "INTERNAL", MsgUpdateFailed},
		{"resource exhausted", &CallableError{Code: codes.ResourceExhausted, Message: MsgTooManyRequests}, http.StatusTooManyRequests, "RESOURCE_EXHAUSTED", MsgTooManyRequests},
		{"grpc status", status.Error(codes.InvalidArgument, "bad id"), http.StatusBadRequest, "INVALID_ARGUMENT", "bad id"},
		{"grpc internal status hides message", status.Error(codes.Internal, "pq: boom"), http.StatusInternalServerError, "INTERNAL", MsgUpdateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpStatus, envelope := NewEnvelope(tt.err)
			assert.Equal(t, tt.wantHTTP, httpStatus)
			assert.Equal(t, tt.wantStatus, envelope.Error.Status)
			assert.Equal(t, tt.wantMsg, envelope.Error.Message)
		})
	}
}

func TestToStatus(t *testing.T) {
	assert.Nil(t, ToStatus(nil))

	s, ok := status.FromError(ToStatus(Internal(MsgUpdateFailed, errors.New("secret"))))
	require.True(t, ok)
	assert.Equal(t, codes.Internal, s.Code())
	assert.Equal(t, MsgUpdateFailed, s.Message())

	s, _ = status.FromError(ToStatus(errors.New("secret")))
	assert.Equal(t, codes.Internal, s.Code())
	assert.NotContains(t, s.Message(), "secret")
}

func TestHandleCallableError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return HandleCallableError(c, InvalidArgument(MsgMissingPostID))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"status":"INVALID_ARGUMENT","message":"The function must be called with a 'postId'."}}`, string(body))
}
