package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware fills in a default Cache-Control on GET responses.
// Handlers that set their own value win; the check must read the
// response header, not the request's.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}

		if existing := c.GetRespHeader("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10"

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/graphql":
			ttl = "private, max-age=0"

		case strings.HasPrefix(path, "/v1/categories"):
			// Categories change rarely (admin edits only)
			ttl = "public, max-age=3600"

		case strings.HasPrefix(path, "/v1/experiences/nearby") ||
			strings.HasPrefix(path, "/v1/experiences/suggested"):
			// Ranked against the caller's stored location
			ttl = "private, max-age=60"

		case strings.HasPrefix(path, "/v1/experiences/search"):
			ttl = "public, max-age=120"

		case strings.HasPrefix(path, "/v1/experiences/"):
			ttl = "public, max-age=300"

		case path == "/v1/experiences":
			ttl = "public, max-age=120"

		case strings.HasPrefix(path, "/v1/location") ||
			strings.HasPrefix(path, "/v1/cart") ||
			strings.HasPrefix(path, "/v1/wishlist") ||
			strings.HasPrefix(path, "/v1/orders") ||
			strings.HasPrefix(path, "/v1/personalizer"):
			// Per-user state: carts, wishlists, stored locations, wizard sessions
			ttl = "private, no-store"

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
