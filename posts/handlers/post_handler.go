package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/schema"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	"github.com/qolzam/telar-blog/posts/errors"
	"github.com/qolzam/telar-blog/posts/models"
	"github.com/qolzam/telar-blog/posts/services"
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}

// PostHandler handles all post-related HTTP requests
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new PostHandler with injected dependencies
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// decodeQuery fills dst from the request query string
func decodeQuery(c *fiber.Ctx, dst interface{}) error {
	values := make(map[string][]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		values[k] = append(values[k], string(value))
	})
	return queryDecoder.Decode(dst, values)
}

// ListPosts handles GET /posts?sort=latest|trending&limit=N
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	var query models.ListPostsQuery
	if err := decodeQuery(c, &query); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid query parameters")
	}

	result, err := h.postService.ListPosts(c.UserContext(), &query)
	if err != nil {
		return h.serviceError(c, "ListPosts", err)
	}
	return c.JSON(result)
}

// GetPost handles GET /posts/:postId
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.postService.GetPost(c.UserContext(), c.Params("postId"))
	if err != nil {
		return h.serviceError(c, "GetPost", err)
	}
	return c.JSON(post)
}

// GetPostBySlug handles GET /posts/slug/:slug
func (h *PostHandler) GetPostBySlug(c *fiber.Ctx) error {
	post, err := h.postService.GetPostBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.serviceError(c, "GetPostBySlug", err)
	}
	return c.JSON(post)
}

// ListPostsByCategory handles GET /categories/:name/posts
func (h *PostHandler) ListPostsByCategory(c *fiber.Ctx) error {
	var query models.TaxonomyQuery
	if err := decodeQuery(c, &query); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid query parameters")
	}

	result, err := h.postService.ListPostsByCategory(c.UserContext(), c.Params("name"), query.Limit)
	if err != nil {
		return h.serviceError(c, "ListPostsByCategory", err)
	}
	return c.JSON(result)
}

// ListPostsByLabel handles GET /labels/:name/posts
func (h *PostHandler) ListPostsByLabel(c *fiber.Ctx) error {
	var query models.TaxonomyQuery
	if err := decodeQuery(c, &query); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid query parameters")
	}

	result, err := h.postService.ListPostsByLabel(c.UserContext(), c.Params("name"), query.Limit)
	if err != nil {
		return h.serviceError(c, "ListPostsByLabel", err)
	}
	return c.JSON(result)
}

// ListCategories handles GET /categories
func (h *PostHandler) ListCategories(c *fiber.Ctx) error {
	names, err := h.postService.ListCategories(c.UserContext())
	if err != nil {
		return h.serviceError(c, "ListCategories", err)
	}
	return c.JSON(models.NamesResponse{Names: names})
}

// ListLabels handles GET /labels
func (h *PostHandler) ListLabels(c *fiber.Ctx) error {
	names, err := h.postService.ListLabels(c.UserContext())
	if err != nil {
		return h.serviceError(c, "ListLabels", err)
	}
	return c.JSON(models.NamesResponse{Names: names})
}

// serviceError logs unexpected failures before mapping them to a response
func (h *PostHandler) serviceError(c *fiber.Ctx, op string, err error) error {
	resp := errors.HandleServiceError(c, err)
	if c.Response().StatusCode() >= http.StatusInternalServerError {
		log.ErrorWithContext(c.UserContext(), "%s failed (status %d): %v", op, c.Response().StatusCode(), err)
	}
	return resp
}
