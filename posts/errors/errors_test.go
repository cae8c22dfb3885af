package errors_test

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postErrors "github.com/qolzam/telar-blog/posts/errors"
)

func TestPostError_Error(t *testing.T) {
	err := postErrors.NewPostError("TEST_CODE", "Test message", nil)
	assert.Equal(t, "TEST_CODE: Test message", err.Error())

	cause := errors.New("database connection failed")
	errWithCause := postErrors.NewPostError("DB_ERROR", "Database error", cause)
	assert.Contains(t, errWithCause.Error(), "DB_ERROR: Database error")
	assert.Contains(t, errWithCause.Error(), "database connection failed")
}

func TestPostError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	err := postErrors.NewPostError("TEST_CODE", "Test message", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWrapDatabaseError(t *testing.T) {
	originalErr := errors.New("connection timeout")
	wrappedErr := postErrors.WrapDatabaseError(originalErr)

	assert.Equal(t, postErrors.CodeDatabaseError, wrappedErr.Code)
	assert.Equal(t, "Database operation failed", wrappedErr.Message)
	assert.Equal(t, originalErr, wrappedErr.Cause)
}

func TestHandleServiceError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", fmt.Errorf("get: %w", postErrors.ErrPostNotFound), 404, postErrors.CodePostNotFound},
		{"duplicate", postErrors.ErrPostAlreadyExists, 409, postErrors.CodeDuplicateKey},
		{"validation", postErrors.WrapValidationError(postErrors.ErrInvalidPostData, "slug is required"), 400, postErrors.CodeValidationFailed},
		{"database", postErrors.WrapDatabaseError(errors.New(`pq: relation "posts" does not exist`)), 500, postErrors.CodeInternalError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return postErrors.HandleServiceError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Contains(t, string(body), tc.wantCode)
			assert.NotContains(t, string(body), "pq:")
		})
	}
}
