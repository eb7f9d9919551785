package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/pkg/metrics"
)

// userID identifies the storefront visitor. The web frontend sends its
// session ID in X-User-Id; without one, preference reads fall back to an
// anonymous bucket with no stored location.
func userID(c *fiber.Ctx) string {
	if id := c.Get("X-User-Id"); id != "" {
		return id
	}
	return "anonymous"
}

// parseFilter builds a catalog filter from query parameters.
func parseFilter(c *fiber.Ctx) domain.ExperienceFilter {
	f := domain.ExperienceFilter{
		Category:      c.Query("category"),
		NicheCategory: c.Query("niche_category"),
		MinPrice:      c.QueryInt("min_price", 0),
		MaxPrice:      c.QueryInt("max_price", 0),
	}

	boolArg := func(name string) *bool {
		raw := c.Query(name)
		if raw == "" {
			return nil
		}
		v := raw == "true" || raw == "1"
		return &v
	}
	f.Trending = boolArg("trending")
	f.Featured = boolArg("featured")
	f.Romantic = boolArg("romantic")
	f.Adventurous = boolArg("adventurous")
	f.GroupActivity = boolArg("group_activity")
	return f
}

// paginate slices a full result set and sets Link headers.
func paginate[T any](c *fiber.Ctx, items []T, defaultLimit, maxLimit int) ([]T, Pagination) {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", defaultLimit)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	total := len(items)
	if offset >= total {
		items = nil
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		items = items[offset:end]
	}

	pg := Pagination{Offset: offset, Limit: limit, Total: total}
	SetLinkHeaders(c, pg)
	return items, pg
}

// ListExperiencesHandler returns catalog listings with filters and pagination.
func ListExperiencesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		exps, err := deps.Catalog.List(c.Context(), parseFilter(c))
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, exps, 50, 200)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// SearchExperiencesHandler performs fuzzy search on titles and descriptions.
func SearchExperiencesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		limit := c.QueryInt("limit", 20)

		exps, err := deps.Catalog.Search(c.Context(), query, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(exps)
	}
}

// NearbyExperiencesHandler ranks the catalog by proximity. With explicit
// lat/lon it ranks around that point; otherwise it uses the caller's
// stored location preference, and with neither it returns the filtered
// catalog unranked.
func NearbyExperiencesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		radius := c.QueryFloat("radius_km", 0)
		limit := c.QueryInt("limit", 0)
		filter := parseFilter(c)

		if c.Query("lat") != "" || c.Query("lon") != "" {
			lat := c.QueryFloat("lat", 0)
			lon := c.QueryFloat("lon", 0)
			if c.Query("lat") == "" || c.Query("lon") == "" {
				return errBadRequest(c, "lat and lon must be provided together")
			}
			exps, err := deps.Discovery.NearPoint(c.Context(), domain.GeoPoint{Lat: lat, Lon: lon}, filter, radius, limit)
			if err != nil {
				return errInternal(c, err.Error())
			}
			metrics.ProximityRankings.WithLabelValues("point").Inc()
			return c.JSON(fiber.Map{"data": exps, "count": len(exps)})
		}

		exps, loc, err := deps.Discovery.Nearby(c.Context(), userID(c), filter, radius, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}
		metrics.ProximityRankings.WithLabelValues(loc.Kind.String()).Inc()

		return c.JSON(fiber.Map{
			"data":     exps,
			"count":    len(exps),
			"location": loc,
		})
	}
}

// GetExperienceHandler returns a single listing by ID.
func GetExperienceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "experience id is required")
		}
		e, err := deps.Catalog.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "experience not found")
		}
		return c.JSON(e)
	}
}

// ListCategoriesHandler returns the browse categories.
func ListCategoriesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := deps.Categories.List(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(cats)
	}
}

// GetLocationHandler returns the caller's resolved location preference.
func GetLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loc := deps.Locations.Resolve(c.Context(), userID(c))
		return c.JSON(loc)
	}
}

// SetCityHandler stores a city-level location preference.
func SetCityHandler(deps *Dependencies) fiber.Handler {
	type req struct {
		City string `json:"city"`
	}
	return func(c *fiber.Ctx) error {
		var body req
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Locations.SetCity(c.Context(), userID(c), body.City); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// SetAddressHandler stores a geocoded address preference. Coordinates
// arrive as strings, exactly as the geocoder emitted them.
func SetAddressHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body domain.StoredAddress
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Locations.SetAddress(c.Context(), userID(c), body); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// ClearLocationHandler forgets the stored location.
func ClearLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deps.Locations.Clear(c.Context(), userID(c))
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// SuggestAddressesHandler forward-geocodes a partial address for the
// location picker's autocomplete.
func SuggestAddressesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		limit := c.QueryInt("limit", 5)

		metrics.GeocodeRequests.WithLabelValues("search").Inc()
		results, err := deps.Locations.SuggestAddresses(c.Context(), query, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}
		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(results)
	}
}

// ReverseGeocodeHandler resolves coordinates to a display address.
func ReverseGeocodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("lat") == "" || c.Query("lon") == "" {
			return errBadRequest(c, "lat and lon are required")
		}
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)

		metrics.GeocodeRequests.WithLabelValues("reverse").Inc()
		addr, err := deps.Locations.ReverseLookup(c.Context(), lat, lon)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"address": addr})
	}
}

// ListOrdersHandler returns the caller's order history.
func ListOrdersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orders, err := deps.Orders.ListByUser(c.Context(), userID(c))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(orders)
	}
}

// GetOrderHandler returns one order, but only to its owner.
func GetOrderHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "order id is required")
		}
		order, err := deps.Orders.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "order not found")
		}
		if order.UserID != userID(c) {
			return errForbidden(c, "not your order")
		}
		return c.JSON(order)
	}
}

// LinkStatsHandler returns click counts for a partner slug.
func LinkStatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		count, err := deps.Redirects.Stats(c.Context(), slug)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(fiber.Map{"slug": slug, "clicks": count})
	}
}
