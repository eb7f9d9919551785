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
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	natsadapter "github.com/slashexp/experiences/internal/adapters/nats"
	"github.com/slashexp/experiences/internal/adapters/postgres"
	"github.com/slashexp/experiences/internal/core/ports"
	"github.com/slashexp/experiences/internal/core/usecases"
	"github.com/slashexp/experiences/internal/pkg/config"
	"github.com/slashexp/experiences/internal/pkg/logging"
	"github.com/slashexp/experiences/internal/pkg/metrics"
)

// The redirector is a deliberately tiny binary: resolve slug, publish the
// click to NATS, send the 302. Click persistence happens in the worker,
// off this hot path.
func main() {
	cfg, err := config.Load("slashexp-redirector")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var publisher ports.EventPublisher
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, clicks will not be recorded", "error", err)
	} else {
		defer nc.Close()
		publisher = nc
	}

	linkRepo := postgres.NewRedirectLinkRepo(db)
	redirects := usecases.NewRedirectService(linkRepo, nil, publisher)

	app := fiber.New(fiber.Config{
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
		DisableStartupMessage: true,
		AppName:               "Slash Experiences Redirector",
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	app.Get("/r/:slug", func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		target, err := redirects.Resolve(c.Context(), slug, c.Get("Referer"), c.Get("User-Agent"))
		if err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "unknown link"})
		}
		metrics.ClicksRecorded.WithLabelValues(slug).Inc()
		return c.Redirect(target, fiber.StatusFound)
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Redirector.Port)
		slog.Info("redirector starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("redirector shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
}
