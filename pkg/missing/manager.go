package missing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/dmitrymomot/i18n"
)

const defaultMaxWorkers = 10

// ResolveFunc produces a translation for a missed key, e.g. by calling a
// machine-translation service or copying the fallback text. Returning an
// empty string with a nil error drops the report without writing anything.
type ResolveFunc func(ctx context.Context, locale, key, defaultValue string) (string, error)

// Manager processes missing-key reports: each job runs the resolver and
// posts a non-empty result back to the repository. Manager embeds Queue, so
// a worker process can also report misses.
type Manager struct {
	*Queue
	logger *slog.Logger

	mu      sync.Mutex
	started bool
}

// Option configures the manager.
type Option func(*managerConfig)

type managerConfig struct {
	logger     *slog.Logger
	maxWorkers int
}

// WithLogger sets the logger for job processing.
func WithLogger(l *slog.Logger) Option {
	return func(c *managerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers caps concurrent resolutions. Defaults to 10.
func WithMaxWorkers(n int) Option {
	return func(c *managerConfig) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// NewManager creates a manager resolving missed keys via resolve and storing
// results in repo. The River client is created immediately, so reports can
// be enqueued before Start.
func NewManager(pool *pgxpool.Pool, repo i18n.Repository, resolve ResolveFunc, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}
	if repo == nil {
		return nil, i18n.ErrNilRepository
	}
	if resolve == nil {
		return nil, ErrNilResolver
	}

	cfg := &managerConfig{maxWorkers: defaultMaxWorkers}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &missingKeyWorker{
		repo:    repo,
		resolve: resolve,
		logger:  cfg.logger,
	})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: cfg.maxWorkers},
		},
		Workers: workers,
		Logger:  cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("missing: create client: %w", err)
	}

	return &Manager{
		Queue:  &Queue{client: client, logger: cfg.logger},
		logger: cfg.logger,
	}, nil
}

// Start begins processing reports. Reports can be enqueued before Start is
// called.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("missing: start client: %w", err)
	}

	m.started = true
	m.logger.Info("missing key manager started")
	return nil
}

// Stop gracefully shuts down the manager, waiting for in-flight resolutions
// to complete.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}

	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("missing: stop client: %w", err)
	}

	m.started = false
	m.logger.Info("missing key manager stopped")
	return nil
}

// missingKeyWorker resolves one report per job.
type missingKeyWorker struct {
	river.WorkerDefaults[missingKeyArgs]
	repo    i18n.Repository
	resolve ResolveFunc
	logger  *slog.Logger
}

func (w *missingKeyWorker) Work(ctx context.Context, job *river.Job[missingKeyArgs]) error {
	args := job.Args

	translation, err := w.resolve(ctx, args.Locale, args.Key, args.Default)
	if err != nil {
		w.logger.ErrorContext(ctx, "missing key resolution failed",
			slog.String("locale", args.Locale),
			slog.String("key", args.Key),
			slog.Int64("job_id", job.ID),
			slog.Int("attempt", job.Attempt),
			slog.Any("error", err),
		)
		return err
	}

	if translation == "" {
		w.logger.DebugContext(ctx, "missing key dropped by resolver",
			slog.String("locale", args.Locale),
			slog.String("key", args.Key),
		)
		return nil
	}

	if err := w.repo.AddLocale(args.Locale, map[string]any{args.Key: translation}); err != nil {
		return fmt.Errorf("missing: store %s/%s: %w", args.Locale, args.Key, err)
	}

	w.logger.InfoContext(ctx, "missing key resolved",
		slog.String("locale", args.Locale),
		slog.String("key", args.Key),
	)
	return nil
}
