package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"
	"github.com/slashexp/experiences/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// The pre-wizard "suggested" carousel was folded into /v1/experiences/nearby
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{
			Path:        "/v1/experiences/suggested",
			SunsetDate:  time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC),
			Alternative: "/v1/experiences/nearby",
		},
	}))

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1 — 15s per-request timeout
	v1 := app.Group("/v1")
	v1.Get("/experiences", timeout.NewWithContext(ListExperiencesHandler(deps), 15*time.Second))
	v1.Get("/experiences/search", timeout.NewWithContext(SearchExperiencesHandler(deps), 15*time.Second))
	v1.Get("/experiences/nearby", timeout.NewWithContext(NearbyExperiencesHandler(deps), 15*time.Second))
	v1.Get("/experiences/suggested", timeout.NewWithContext(NearbyExperiencesHandler(deps), 15*time.Second))
	v1.Get("/experiences/:id", timeout.NewWithContext(GetExperienceHandler(deps), 15*time.Second))
	v1.Get("/categories", timeout.NewWithContext(ListCategoriesHandler(deps), 15*time.Second))

	// Location preference
	v1.Get("/location", GetLocationHandler(deps))
	v1.Put("/location/city", SetCityHandler(deps))
	v1.Put("/location/address", SetAddressHandler(deps))
	v1.Delete("/location", ClearLocationHandler(deps))
	v1.Get("/location/suggest", timeout.NewWithContext(SuggestAddressesHandler(deps), 15*time.Second))
	v1.Get("/location/reverse", timeout.NewWithContext(ReverseGeocodeHandler(deps), 15*time.Second))

	// Cart & checkout
	v1.Get("/cart", GetCartHandler(deps))
	v1.Post("/cart/items", AddCartItemHandler(deps))
	v1.Delete("/cart/items/:experienceID", RemoveCartItemHandler(deps))
	v1.Delete("/cart", ClearCartHandler(deps))
	v1.Post("/checkout", timeout.NewWithContext(CheckoutHandler(deps), 30*time.Second))
	v1.Get("/orders", ListOrdersHandler(deps))
	v1.Get("/orders/:id", GetOrderHandler(deps))

	// Wishlist
	v1.Get("/wishlist", GetWishlistHandler(deps))
	v1.Post("/wishlist/toggle", ToggleWishlistHandler(deps))
	v1.Delete("/wishlist", ClearWishlistHandler(deps))

	// Gift personalizer wizard
	v1.Post("/personalizer", StartPersonalizerHandler(deps))
	v1.Get("/personalizer/:id", GetPersonalizerHandler(deps))
	v1.Post("/personalizer/:id/answers", AnswerPersonalizerHandler(deps))
	v1.Post("/personalizer/:id/complete", timeout.NewWithContext(CompletePersonalizerHandler(deps), 15*time.Second))

	// Back office
	admin := v1.Group("/admin", AdminAuthMiddleware(deps.AdminToken))
	admin.Get("/users", AdminListUsersHandler(deps))
	admin.Delete("/users/:id", AdminDeleteUserHandler(deps))
	admin.Get("/providers", AdminListProvidersHandler(deps))
	admin.Post("/providers", AdminSaveProviderHandler(deps))
	admin.Delete("/providers/:id", AdminDeleteProviderHandler(deps))
	admin.Post("/categories", AdminSaveCategoryHandler(deps))
	admin.Delete("/categories/:slug", AdminDeleteCategoryHandler(deps))
	admin.Post("/experiences", AdminSaveExperienceHandler(deps))
	admin.Delete("/experiences/:id", AdminDeleteExperienceHandler(deps))
	admin.Get("/links", AdminListLinksHandler(deps))
	admin.Post("/links", AdminSaveLinkHandler(deps))
	admin.Get("/links/:slug/stats", LinkStatsHandler(deps))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
