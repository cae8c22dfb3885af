package views

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/qolzam/telar-blog/internal/middleware/requestid"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/qolzam/telar-blog/internal/testutil"
	viewsErrors "github.com/qolzam/telar-blog/views/errors"
	"github.com/qolzam/telar-blog/views/handlers"
	"github.com/qolzam/telar-blog/views/models"
	"github.com/qolzam/telar-blog/views/repository"
	"github.com/qolzam/telar-blog/views/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPost(iso *testutil.IsolatedTest, id string) {
	now := time.Now().UTC()
	iso.Exec(`INSERT INTO posts (id, title, slug, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`, id, id, "slug-"+id, now, now)
}

func newViewsApp(t *testing.T, mutate func(*platformconfig.Config)) (*testutil.HTTPHelper, *testutil.IsolatedTest) {
	t.Helper()
	iso := testutil.NewIsolatedTest(t, platformconfig.DatabaseTypeSQLite)
	if mutate != nil {
		mutate(iso.Config)
	}

	svc := services.NewViewService(repository.NewSQLCounter(iso.Client))
	app := fiber.New()
	app.Use(requestid.New())
	RegisterRoutes(app, &ViewsHandlers{ViewHandler: handlers.NewViewHandler(svc)}, iso.Config)
	return testutil.NewHTTPHelper(t, app), iso
}

func TestRoutes_IncrementPostView(t *testing.T) {
	h, iso := newViewsApp(t, nil)
	seedPost(iso, "abc")
	seedPost(iso, "other")

	var result models.IncrementResult
	resp := h.NewRequest(http.MethodPost, "/api/views/incrementPostView", map[string]string{"postId": "abc"}).SendJSON(&result)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, models.IncrementResult{Success: true, PostID: "abc"}, result)

	resp = h.NewRequest(http.MethodPost, "/incrementPostView", map[string]interface{}{"data": map[string]string{"postId": "abc"}}).SendJSON(&result)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, int64(2), iso.Views("abc"))
	assert.Equal(t, int64(0), iso.Views("other"))
}

func TestRoutes_IncrementPostViewFailures(t *testing.T) {
	h, iso := newViewsApp(t, nil)

	var envelope viewsErrors.ErrorEnvelope
	resp := h.NewRequest(http.MethodPost, "/incrementPostView", map[string]string{}).SendJSON(&envelope)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ARGUMENT", envelope.Error.Status)

	resp = h.NewRequest(http.MethodPost, "/incrementPostView", map[string]string{"postId": "ghost"}).SendJSON(&envelope)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", envelope.Error.Status)
	assert.Equal(t, viewsErrors.MsgUpdateFailed, envelope.Error.Message)
	assert.Zero(t, iso.CountPosts())

	resp = h.NewRequest(http.MethodPost, "/incrementPostView", map[string]string{"postId": " "}).SendJSON(&envelope)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", envelope.Error.Status)
	assert.Zero(t, iso.CountPosts())
}

func TestRoutes_ConcurrentIncrements(t *testing.T) {
	h, iso := newViewsApp(t, nil)
	seedPost(iso, "hot")

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := h.NewRequest(http.MethodPost, "/incrementPostView", map[string]string{"postId": "hot"}).Send()
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), iso.Views("hot"))
}

func TestRoutes_RateLimited(t *testing.T) {
	h, iso := newViewsApp(t, func(cfg *platformconfig.Config) {
		cfg.RateLimits.Views = platformconfig.RateLimitConfig{Enabled: true, Max: 2, Duration: time.Minute}
	})
	seedPost(iso, "abc")

	for i := 0; i < 2; i++ {
		resp := h.NewRequest(http.MethodPost, "/incrementPostView", map[string]string{"postId": "abc"}).Send()
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var envelope viewsErrors.ErrorEnvelope
	resp := h.NewRequest(http.MethodPost, "/incrementPostView", map[string]string{"postId": "abc"}).SendJSON(&envelope)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RESOURCE_EXHAUSTED", envelope.Error.Status)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	assert.Equal(t, int64(2), iso.Views("abc"))
}
