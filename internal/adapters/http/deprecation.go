package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DeprecatedRoute describes an endpoint scheduled for removal and where
// storefront clients should go instead.
type DeprecatedRoute struct {
	Path        string
	SunsetDate  time.Time
	Alternative string
}

// DeprecationMiddleware stamps deprecated endpoints with RFC 8594
// Deprecation and Sunset headers so clients can migrate before the
// route disappears. Paths are matched exactly; every deprecated route
// here is a fixed path, not a parameterised one.
func DeprecationMiddleware(deprecated []DeprecatedRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, d := range deprecated {
			if c.Path() != d.Path {
				continue
			}

			c.Set("Deprecation", "true")
			c.Set("Sunset", d.SunsetDate.UTC().Format(time.RFC1123))

			if d.Alternative != "" {
				c.Set("Link", fmt.Sprintf(`<%s>; rel="successor-version"`, d.Alternative))
			}

			days := time.Until(d.SunsetDate).Hours() / 24
			c.Set("Warning", fmt.Sprintf(`299 - "Deprecated API, will sunset in %.0f days"`, days))
			break
		}

		return c.Next()
	}
}
