// Package ratelimit provides per-client rate limiting for public endpoints
package ratelimit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/qolzam/telar-blog/internal/pkg/log"
	platformconfig "github.com/qolzam/telar-blog/internal/platform/config"
	"github.com/qolzam/telar-blog/internal/types"
)

// EndpointType names the endpoint group a limiter protects
type EndpointType int

const (
	EndpointViews EndpointType = iota
)

func (e EndpointType) String() string {
	switch e {
	case EndpointViews:
		return "view count"
	default:
		return "unknown"
	}
}

// Config holds the configuration for rate limiting middleware
type Config struct {
	EndpointType EndpointType

	// Max requests per Window for one key
	Max    int
	Window time.Duration

	// Next skips the middleware when it returns true
	Next func(c *fiber.Ctx) bool

	// KeyGenerator defaults to client IP + path
	KeyGenerator func(c *fiber.Ctx) string

	// LimitReached writes the rejection response
	LimitReached func(c *fiber.Ctx) error
}

func configDefault(config Config) Config {
	if config.Max <= 0 {
		config.Max = 60
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}

	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		}
	}

	if config.LimitReached == nil {
		window := config.Window
		name := config.EndpointType.String()
		config.LimitReached = func(c *fiber.Ctx) error {
			c.Set(types.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":      "Rate limit exceeded",
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    fmt.Sprintf("Too many %s requests. Please try again later.", name),
				"retryAfter": int(window.Seconds()),
			})
		}
	}

	return config
}

// New creates a new rate limiting middleware handler
func New(config Config) fiber.Handler {
	cfg := configDefault(config)
	reached := cfg.LimitReached
	name := cfg.EndpointType.String()

	return limiter.New(limiter.Config{
		Max:          cfg.Max,
		Expiration:   cfg.Window,
		KeyGenerator: cfg.KeyGenerator,
		Next:         cfg.Next,
		LimitReached: func(c *fiber.Ctx) error {
			log.WarnWithContext(c.UserContext(), "[RateLimit] Rate limit exceeded for %s from IP: %s", name, c.IP())
			return reached(c)
		},
	})
}

// FromPlatform builds a limiter from a RATE_LIMIT_* section.
// A disabled section yields a pass-through handler.
func FromPlatform(endpoint EndpointType, rl platformconfig.RateLimitConfig, limitReached func(c *fiber.Ctx) error) fiber.Handler {
	if !rl.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return New(Config{
		EndpointType: endpoint,
		Max:          rl.Max,
		Window:       rl.Duration,
		LimitReached: limitReached,
	})
}
