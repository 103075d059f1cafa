package refresh

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/i18n"
)

// Source supplies translation catalogs keyed by locale.
type Source interface {
	Fetch(ctx context.Context) (map[string]map[string]any, error)
}

// Refresher periodically replaces repository locales with the catalogs a
// Source returns. Locales absent from a fetch are left untouched, so a
// source may own a subset of the repository.
type Refresher struct {
	repo       i18n.Repository
	source     Source
	schedule   cron.Schedule
	timeout    time.Duration
	logger     *slog.Logger
	onError    func(error)
	runOnStart bool

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a Refresher syncing repo from source. The default schedule
// runs hourly.
func New(repo i18n.Repository, source Source, opts ...Option) (*Refresher, error) {
	if repo == nil {
		return nil, i18n.ErrNilRepository
	}
	if source == nil {
		return nil, ErrNilSource
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	schedule, err := parseSchedule(s)
	if err != nil {
		return nil, err
	}

	return &Refresher{
		repo:       repo,
		source:     source,
		schedule:   schedule,
		timeout:    s.timeout,
		logger:     s.logger,
		onError:    s.onError,
		runOnStart: s.runOnStart,
	}, nil
}

func parseSchedule(s settings) (cron.Schedule, error) {
	if s.interval > 0 {
		return cron.Every(s.interval), nil
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(s.schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrInvalidSchedule, s.schedule, err)
	}
	return schedule, nil
}

// Start launches the sync loop. The context bounds startup only; the loop
// runs until Stop.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.started = true

	go r.run(runCtx)

	r.logger.InfoContext(ctx, "catalog refresher started")
	return nil
}

// Stop terminates the sync loop, waiting for an in-flight run to finish.
func (r *Refresher) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return ErrNotStarted
	}

	r.cancel()
	select {
	case <-r.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	r.started = false
	r.logger.InfoContext(ctx, "catalog refresher stopped")
	return nil
}

// Sync performs one fetch-and-replace run.
func (r *Refresher) Sync(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	catalogs, err := r.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("refresh: fetch catalogs: %w", err)
	}

	for _, locale := range slices.Sorted(maps.Keys(catalogs)) {
		if err := r.repo.ReplaceLocale(locale, catalogs[locale]); err != nil {
			return fmt.Errorf("refresh: replacing %q: %w", locale, err)
		}
	}
	return nil
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	if r.runOnStart {
		r.syncOnce(ctx)
	}

	for {
		timer := time.NewTimer(time.Until(r.schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			r.syncOnce(ctx)
		}
	}
}

func (r *Refresher) syncOnce(ctx context.Context) {
	if err := r.Sync(ctx); err != nil {
		r.logger.ErrorContext(ctx, "catalog sync failed", slog.Any("error", err))
		if r.onError != nil {
			r.onError(err)
		}
	}
}
