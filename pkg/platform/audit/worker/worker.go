// Package worker relays audit outbox entries to the message broker.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	audit "rtwgate/pkg/platform/audit"
)

// Source yields unpublished outbox entries and records delivery.
type Source interface {
	FetchPending(ctx context.Context, limit int) ([]audit.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Publisher delivers one entry to the broker. Key selects the partition.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

// Worker polls the outbox and publishes entries in creation order. Delivery is
// at-least-once: a crash between publish and mark re-sends the batch.
type Worker struct {
	source    Source
	publisher Publisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Worker) {
		w.now = now
	}
}

func NewWorker(source Source, publisher Publisher, opts ...Option) *Worker {
	w := &Worker{
		source:    source,
		publisher: publisher,
		interval:  2 * time.Second,
		batchSize: 100,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run relays until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if _, err := w.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.WarnContext(ctx, "audit outbox relay failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes one batch and returns how many entries were delivered.
// It stops at the first publish failure so ordering per tenant is preserved.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	entries, err := w.source.FetchPending(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	published := make([]uuid.UUID, 0, len(entries))
	var publishErr error
	for _, e := range entries {
		headers := map[string]string{"event_type": e.EventType}
		if err := w.publisher.Publish(ctx, e.AggregateID, e.Payload, headers); err != nil {
			publishErr = err
			break
		}
		published = append(published, e.ID)
	}

	if err := w.source.MarkPublished(ctx, published, w.now()); err != nil {
		return 0, err
	}
	return len(published), publishErr
}
