package missing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/dmitrymomot/i18n"
)

// Queue records missing translation keys as River jobs without processing
// them. Use it in request-serving processes; a Manager in a worker process
// resolves the reports.
type Queue struct {
	client *river.Client[pgx.Tx]
	logger *slog.Logger
}

// QueueOption configures the queue.
type QueueOption func(*queueConfig)

type queueConfig struct {
	logger *slog.Logger
}

// WithQueueLogger sets the logger for the queue.
func WithQueueLogger(l *slog.Logger) QueueOption {
	return func(c *queueConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewQueue creates an insert-only client over pool.
func NewQueue(pool *pgxpool.Pool, opts ...QueueOption) (*Queue, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := &queueConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Insert-only mode: no Workers, no Queues.
	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("missing: create client: %w", err)
	}

	return &Queue{client: client, logger: cfg.logger}, nil
}

// Report enqueues a missed key for resolution. Identical reports are
// deduplicated while one is outstanding.
func (q *Queue) Report(ctx context.Context, locale, key, defaultValue string) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}
	if key == "" {
		return ErrEmptyKey
	}

	args := missingKeyArgs{Locale: locale, Key: key, Default: defaultValue}
	if _, err := q.client.Insert(ctx, args, nil); err != nil {
		return fmt.Errorf("missing: report %s/%s: %w", locale, key, err)
	}
	return nil
}

// NotFoundHandler adapts the queue to the engine's miss hook. The handler
// only records the miss; it never produces a translation synchronously.
func (q *Queue) NotFoundHandler() i18n.NotFoundHandler {
	return func(ctx context.Context, locale, key, defaultValue string) (string, error) {
		if err := q.Report(ctx, locale, key, defaultValue); err != nil {
			return "", err
		}
		return "", nil
	}
}
