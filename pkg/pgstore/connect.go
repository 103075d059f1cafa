package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Connect establishes a PostgreSQL connection pool with retry logic, applies
// the store's migrations, and returns a ready Store. The store owns the pool
// and closes it on Close.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDSN, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MinConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := connect(ctx, connConfig, cfg.RetryAttempts, cfg.RetryInterval)
	if err != nil {
		return nil, err
	}

	s := defaultStoreSettings()
	for _, opt := range opts {
		opt(s)
	}

	// Bridge the pool to database/sql for goose and the store itself.
	db := stdlib.OpenDBFromPool(pool)

	if err := Migrate(ctx, db, s.logger); err != nil {
		pool.Close()
		return nil, err
	}

	store, err := newStore(ctx, db, s, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// connect builds the pool with exponential backoff. Attempt 1 waits
// RetryInterval, attempt 2 waits 2x, and so on, which avoids a thundering
// herd when several instances restart at once.
func connect(ctx context.Context, cfg *pgxpool.Config, attempts int, interval time.Duration) (*pgxpool.Pool, error) {
	attempts = max(attempts, 1)

	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * interval):
		}
	}

	return nil, ErrConnectionFailed
}
