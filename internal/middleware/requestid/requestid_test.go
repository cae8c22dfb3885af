package requestid

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	"github.com/qolzam/telar-blog/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"locals": GetRequestID(c),
			"ctx":    log.RequestIDFrom(c.UserContext()),
		})
	})
	return app
}

func TestRequestID_Generated(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	id := resp.Header.Get(types.HeaderRequestID)
	_, err = uuid.FromString(id)
	assert.NoError(t, err)
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(types.HeaderRequestID, "req-123")

	resp, err := newApp().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "req-123", resp.Header.Get(types.HeaderRequestID))

	var body map[string]string
	require.NoError(t, decode(resp.Body, &body))
	assert.Equal(t, "req-123", body["locals"])
	assert.Equal(t, "req-123", body["ctx"])
}

func decode(r io.Reader, v interface{}) error {
	return jsoniter.NewDecoder(r).Decode(v)
}
