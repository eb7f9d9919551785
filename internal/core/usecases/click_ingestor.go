package usecases

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
)

// ClickIngestor buffers click events consumed off the event bus and
// flushes them to the click log in batches. The redirector itself only
// publishes; this keeps database writes off its hot path.
type ClickIngestor struct {
	clicks    ports.ClickLogRepository
	logger    *slog.Logger
	batchSize int
	interval  time.Duration

	mu  sync.Mutex
	buf []domain.ClickEvent
}

// NewClickIngestor creates a new ClickIngestor.
func NewClickIngestor(clicks ports.ClickLogRepository, logger *slog.Logger, batchSize int, interval time.Duration) *ClickIngestor {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &ClickIngestor{
		clicks:    clicks,
		logger:    logger,
		batchSize: batchSize,
		interval:  interval,
	}
}

// Add buffers one event, flushing when the batch is full.
func (i *ClickIngestor) Add(ctx context.Context, e *domain.ClickEvent) error {
	i.mu.Lock()
	i.buf = append(i.buf, *e)
	full := len(i.buf) >= i.batchSize
	i.mu.Unlock()

	if full {
		return i.Flush(ctx)
	}
	return nil
}

// Flush writes the buffered events. The buffer is restored on failure so
// the next tick retries.
func (i *ClickIngestor) Flush(ctx context.Context) error {
	i.mu.Lock()
	batch := i.buf
	i.buf = nil
	i.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := i.clicks.InsertBatch(ctx, batch); err != nil {
		i.mu.Lock()
		i.buf = append(batch, i.buf...)
		i.mu.Unlock()
		i.logger.Error("click batch insert failed", "count", len(batch), "error", err)
		return err
	}
	i.logger.Debug("click batch flushed", "count", len(batch))
	return nil
}

// Run flushes on a ticker until the context is cancelled, then drains.
func (i *ClickIngestor) Run(ctx context.Context) {
	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = i.Flush(context.Background())
			return
		case <-ticker.C:
			_ = i.Flush(ctx)
		}
	}
}
