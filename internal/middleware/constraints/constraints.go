package constraints

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// RequireSlug answers 404 when the path parameter is not a lowercase hyphenated slug.
// Static routes must be registered before parameterized ones.
func RequireSlug(param string) fiber.Handler {
	return RequirePattern(param, slugPattern)
}

// RequirePattern answers 404 when a non-empty path parameter does not match pattern
func RequirePattern(param string, pattern *regexp.Regexp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.Params(param)
		if value == "" {
			return c.Next()
		}
		if !pattern.MatchString(value) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.Next()
	}
}
