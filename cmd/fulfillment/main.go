package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/slashexp/experiences/internal/adapters/nats"
	"github.com/slashexp/experiences/internal/adapters/notify"
	"github.com/slashexp/experiences/internal/adapters/payment"
	"github.com/slashexp/experiences/internal/adapters/postgres"
	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
	"github.com/slashexp/experiences/internal/core/usecases"
	"github.com/slashexp/experiences/internal/pkg/config"
	"github.com/slashexp/experiences/internal/pkg/logging"
	"github.com/slashexp/experiences/internal/workflows"
)

// The fulfillment worker has two jobs: run the Temporal gift fulfillment
// workflow, and drain redirector click events off JetStream into Postgres
// in batches.
func main() {
	cfg, err := config.Load("slashexp-fulfillment")
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

	orderRepo := postgres.NewOrderRepo(db)
	clickRepo := postgres.NewClickLogRepo(db)
	gateway := payment.New(cfg.Payments.BaseURL, cfg.Payments.KeyID, cfg.Payments.KeySecret)

	var notifier ports.NotificationService
	if cfg.Notifier.BaseURL != "" {
		notifier = notify.New(cfg.Notifier.BaseURL, cfg.Notifier.APIKey, cfg.Notifier.From)
	} else {
		slog.Warn("notifier not configured, gift emails will only be logged")
	}

	// Click ingestion off the JetStream work queue
	ingestor := usecases.NewClickIngestor(
		clickRepo,
		slog.Default(),
		cfg.Redirector.BatchSize,
		time.Duration(cfg.Redirector.FlushInterval)*time.Second,
	)

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	if err := sub.SubscribeClicks(ctx, func(ctx context.Context, e *domain.ClickEvent) error {
		return ingestor.Add(ctx, e)
	}); err != nil {
		log.Fatalf("subscribe clicks: %v", err)
	}

	if err := sub.SubscribeOrders(ctx, func(ctx context.Context, o *domain.Order) error {
		slog.Info("order placed", "order_id", o.ID, "amount", o.AmountTotal, "currency", o.Currency)
		return nil
	}); err != nil {
		log.Fatalf("subscribe orders: %v", err)
	}

	go ingestor.Run(ctx)

	// Temporal worker for the fulfillment saga
	if cfg.Temporal.Enabled {
		c, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
		})
		if err != nil {
			log.Fatalf("temporal client: %v", err)
		}
		defer c.Close()

		w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
		w.RegisterWorkflow(workflows.GiftFulfillmentWorkflow)
		w.RegisterActivity(&workflows.FulfillmentActivities{
			Orders:   orderRepo,
			Payments: gateway,
			Notifier: notifier,
		})

		if err := w.Start(); err != nil {
			log.Fatalf("temporal worker: %v", err)
		}
		defer w.Stop()
		slog.Info("fulfillment worker started", "task_queue", cfg.Temporal.TaskQueue)
	} else {
		slog.Info("temporal disabled, running click ingestion only")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("worker shutting down", "signal", sig.String())
	cancel()

	// One last drain so buffered clicks are not lost.
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := ingestor.Flush(flushCtx); err != nil {
		slog.Error("final click flush failed", "error", err)
	}
}
