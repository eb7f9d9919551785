package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/slashexp/experiences/internal/adapters/geocode"
	"github.com/slashexp/experiences/internal/adapters/http"
	natsadapter "github.com/slashexp/experiences/internal/adapters/nats"
	"github.com/slashexp/experiences/internal/adapters/payment"
	"github.com/slashexp/experiences/internal/adapters/postgres"
	"github.com/slashexp/experiences/internal/adapters/recommend"
	temporaladapter "github.com/slashexp/experiences/internal/adapters/temporal"
	"github.com/slashexp/experiences/internal/adapters/valkey"
	"github.com/slashexp/experiences/internal/core/ports"
	"github.com/slashexp/experiences/internal/core/usecases"
	"github.com/slashexp/experiences/internal/pkg/config"
	"github.com/slashexp/experiences/internal/pkg/logging"
	"github.com/slashexp/experiences/internal/pkg/metrics"
	"github.com/slashexp/experiences/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("slashexp-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache + preference store
	var cacheSvc ports.CacheService
	var prefs ports.PreferenceStore
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer cache.Close()
	cacheSvc = cache
	prefs = valkey.NewPrefStore(cache)

	// NATS
	var publisher ports.EventPublisher
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer nc.Close()
		publisher = nc
	}

	// Raw NATS connection for the WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Outbound clients
	geocoder := geocode.New(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent)
	gateway := payment.New(cfg.Payments.BaseURL, cfg.Payments.KeyID, cfg.Payments.KeySecret)

	var recommender ports.GiftRecommender
	if cfg.Recommender.BaseURL != "" {
		recommender = recommend.New(cfg.Recommender.BaseURL, cfg.Recommender.APIKey)
	}

	// Temporal client for fulfillment workflows
	var workflowStarter ports.WorkflowStarter
	if cfg.Temporal.Enabled {
		starter, err := temporaladapter.NewStarter(cfg.Temporal.HostPort, cfg.Temporal.Namespace, cfg.Temporal.TaskQueue)
		if err != nil {
			slog.Warn("temporal unavailable, orders will not be fulfilled asynchronously", "error", err)
		} else {
			defer starter.Close()
			workflowStarter = starter
		}
	}

	// Repos
	expRepo := postgres.NewExperienceRepo(db)
	catRepo := postgres.NewCategoryRepo(db)
	providerRepo := postgres.NewProviderRepo(db)
	userRepo := postgres.NewUserRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	linkRepo := postgres.NewRedirectLinkRepo(db)
	clickRepo := postgres.NewClickLogRepo(db)

	// Use cases
	locationSvc := usecases.NewLocationService(prefs, geocoder, cacheSvc)
	catalogSvc := usecases.NewCatalogService(expRepo, cacheSvc)
	discoverySvc := usecases.NewDiscoveryService(expRepo, locationSvc, cfg.Ranking.RadiusKm)
	cartSvc := usecases.NewCartService(prefs, expRepo, orderRepo, gateway, publisher, workflowStarter, cfg.Payments.Currency)
	wishlistSvc := usecases.NewWishlistService(prefs, expRepo)
	personalizerSvc := usecases.NewPersonalizerService(cacheSvc, recommender, expRepo)
	adminSvc := usecases.NewAdminService(userRepo, providerRepo, catRepo, expRepo, linkRepo, cacheSvc)
	redirectSvc := usecases.NewRedirectService(linkRepo, clickRepo, publisher)

	deps := &http.Dependencies{
		Catalog:      catalogSvc,
		Discovery:    discoverySvc,
		Locations:    locationSvc,
		Cart:         cartSvc,
		Wishlist:     wishlistSvc,
		Personalizer: personalizerSvc,
		Admin:        adminSvc,
		Redirects:    redirectSvc,
		Categories:   catRepo,
		Orders:       orderRepo,
		NATS:         natsConn,
		DB:           db,
		Cache:        cache,
		AdminToken:   cfg.Admin.Token,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Slash Experiences API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.slashexperiences.in",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-User-Id",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Export pgx pool stats to Prometheus
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
