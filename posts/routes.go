package posts

import (
	"github.com/gofiber/fiber/v2"
	constraints "github.com/qolzam/telar-blog/internal/middleware/constraints"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/qolzam/telar-blog/internal/utils"
	"github.com/qolzam/telar-blog/posts/handlers"
)

// PostsHandlers holds all the handlers this router needs.
type PostsHandlers struct {
	PostHandler *handlers.PostHandler
}

// RegisterRoutes is the single entry point for setting up the read API.
// Every route is public; the front-end only reads.
func RegisterRoutes(app *fiber.App, handlers *PostsHandlers, cfg *platformconfig.Config) {
	base := utils.GetPrettyURLWithBase(cfg.Server.BaseRoute, "")
	h := handlers.PostHandler

	group := app.Group(base + "/posts")
	group.Get("/", h.ListPosts)
	group.Get("/slug/:slug", constraints.RequireSlug("slug"), h.GetPostBySlug)
	// Parameterized route for a single post (MUST BE LAST)
	group.Get("/:postId", h.GetPost)

	categories := app.Group(base + "/categories")
	categories.Get("/", h.ListCategories)
	categories.Get("/:name/posts", h.ListPostsByCategory)

	labels := app.Group(base + "/labels")
	labels.Get("/", h.ListLabels)
	labels.Get("/:name/posts", h.ListPostsByLabel)
}
