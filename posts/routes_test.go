package posts

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/qolzam/telar-blog/internal/testutil"
	postsErrors "github.com/qolzam/telar-blog/posts/errors"
	"github.com/qolzam/telar-blog/posts/handlers"
	"github.com/qolzam/telar-blog/posts/models"
	"github.com/qolzam/telar-blog/posts/repository"
	"github.com/qolzam/telar-blog/posts/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*testutil.HTTPHelper, *testutil.IsolatedTest) {
	t.Helper()
	iso := testutil.NewIsolatedTest(t, platformconfig.DatabaseTypeSQLite)

	repo := repository.NewSQLRepository(iso.Client)
	svc := services.NewPostService(repo, nil)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	seed := []*models.Post{
		{ID: "p1", Title: "Getting started with Go", Categories: []string{"go"}, Labels: []string{"beginner"}, CreatedAt: base},
		{ID: "p2", Title: "Atomic counters", Categories: []string{"go", "databases"}, Labels: []string{"advanced"}, CreatedAt: base.Add(time.Hour)},
		{ID: "p3", Title: "Indexing strategies", Categories: []string{"databases"}, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, p := range seed {
		_, err := svc.CreatePost(context.Background(), p)
		require.NoError(t, err)
	}
	iso.Exec(`UPDATE posts SET views = ? WHERE id = ?`, 40, "p1")

	app := fiber.New()
	RegisterRoutes(app, &PostsHandlers{PostHandler: handlers.NewPostHandler(svc)}, iso.Config)
	return testutil.NewHTTPHelper(t, app), iso
}

func postIDs(list models.PostsListResponse) []string {
	ids := make([]string, len(list.Posts))
	for i, p := range list.Posts {
		ids[i] = p.ID
	}
	return ids
}

func TestRoutes_ListPosts(t *testing.T) {
	h, _ := newTestApp(t)

	var latest models.PostsListResponse
	resp := h.NewRequest(http.MethodGet, "/api/posts", nil).SendJSON(&latest)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"p3", "p2", "p1"}, postIDs(latest))
	assert.Equal(t, models.SortLatest, latest.Sort)
	assert.Equal(t, models.DefaultListLimit, latest.Limit)

	var trending models.PostsListResponse
	h.NewRequest(http.MethodGet, "/api/posts?sort=trending&limit=2", nil).SendJSON(&trending)
	assert.Equal(t, []string{"p1", "p3"}, postIDs(trending))
}

func TestRoutes_ListPostsRejectsBadQuery(t *testing.T) {
	h, _ := newTestApp(t)

	for _, path := range []string{"/api/posts?sort=random", "/api/posts?limit=500", "/api/posts?limit=abc"} {
		var body postsErrors.ErrorResponse
		resp := h.NewRequest(http.MethodGet, path, nil).SendJSON(&body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.NotEmpty(t, body.Code, path)
	}
}

func TestRoutes_GetPost(t *testing.T) {
	h, _ := newTestApp(t)

	var bySlug models.Post
	resp := h.NewRequest(http.MethodGet, "/api/posts/slug/atomic-counters", nil).SendJSON(&bySlug)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "p2", bySlug.ID)
	assert.Equal(t, []string{"databases", "go"}, bySlug.Categories)

	var byID models.Post
	resp = h.NewRequest(http.MethodGet, "/api/posts/p1", nil).SendJSON(&byID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(40), byID.Views)

	var missing postsErrors.ErrorResponse
	resp = h.NewRequest(http.MethodGet, "/api/posts/nope", nil).SendJSON(&missing)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, postsErrors.CodePostNotFound, missing.Code)

	resp = h.NewRequest(http.MethodGet, "/api/posts/slug/Not_A_Slug", nil).Send()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutes_Taxonomy(t *testing.T) {
	h, _ := newTestApp(t)

	var categories models.NamesResponse
	h.NewRequest(http.MethodGet, "/api/categories", nil).SendJSON(&categories)
	assert.Equal(t, []string{"databases", "go"}, categories.Names)

	var labels models.NamesResponse
	h.NewRequest(http.MethodGet, "/api/labels", nil).SendJSON(&labels)
	assert.Equal(t, []string{"advanced", "beginner"}, labels.Names)

	var inCategory models.PostsListResponse
	resp := h.NewRequest(http.MethodGet, "/api/categories/databases/posts", nil).SendJSON(&inCategory)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"p3", "p2"}, postIDs(inCategory))

	var withLabel models.PostsListResponse
	h.NewRequest(http.MethodGet, "/api/labels/beginner/posts?limit=1", nil).SendJSON(&withLabel)
	assert.Equal(t, []string{"p1"}, postIDs(withLabel))
	assert.Equal(t, 1, withLabel.Limit)

	var empty models.PostsListResponse
	h.NewRequest(http.MethodGet, "/api/labels/unknown/posts", nil).SendJSON(&empty)
	assert.NotNil(t, empty.Posts)
	assert.Empty(t, empty.Posts)
}
