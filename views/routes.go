package views

import (
	"github.com/gofiber/fiber/v2"
	"github.com/qolzam/telar-blog/internal/middleware/ratelimit"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/qolzam/telar-blog/internal/utils"
	"github.com/qolzam/telar-blog/views/handlers"
)

// ViewsHandlers holds all the handlers this router needs.
type ViewsHandlers struct {
	ViewHandler *handlers.ViewHandler
}

// RegisterRoutes mounts the callable endpoint under the base route and at /incrementPostView,
// the path browser clients of the hosted function call.
func RegisterRoutes(app *fiber.App, vh *ViewsHandlers, cfg *platformconfig.Config) {
	rl := cfg.RateLimits.Views
	limit := ratelimit.FromPlatform(ratelimit.EndpointViews, rl, handlers.LimitReached(int(rl.Duration.Seconds())))

	app.Post(utils.GetPrettyURLWithBase(cfg.Server.BaseRoute, "/views/incrementPostView"), limit, vh.ViewHandler.IncrementPostView)
	app.Post("/incrementPostView", limit, vh.ViewHandler.IncrementPostView)
}
