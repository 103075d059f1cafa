package redisstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Open connects to Redis, loads the catalog, and returns a ready Store.
// Supports both redis:// and rediss:// (TLS) URL schemes. The store owns the
// connection and closes it on Close.
//
// Example:
//
//	store, err := redisstore.Open(ctx, "redis://localhost:6379/0",
//	    redisstore.WithPrefix("myapp"),
//	    redisstore.WithRetry(5, 3*time.Second),
//	)
func Open(ctx context.Context, url string, opts ...Option) (*Store, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	redisOpts.PoolSize = s.poolSize
	redisOpts.MinIdleConns = s.minIdleConns
	redisOpts.ReadTimeout = s.readTimeout
	redisOpts.WriteTimeout = s.writeTimeout
	redisOpts.DialTimeout = s.dialTimeout

	client, err := connect(ctx, redisOpts, s.retryAttempts, s.retryInterval)
	if err != nil {
		return nil, err
	}

	store, err := newStore(ctx, client, s, true)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return store, nil
}

// connect establishes a connection with retry logic and exponential backoff.
func connect(ctx context.Context, opts *redis.Options, attempts int, interval time.Duration) (redis.UniversalClient, error) {
	attempts = max(attempts, 1)

	for i := range attempts {
		client := redis.NewClient(opts)

		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}

		_ = client.Close()

		if waitErr := wait(ctx, time.Duration(i+1)*interval); waitErr != nil {
			return nil, errors.Join(ErrConnectionFailed, waitErr)
		}
	}

	return nil, ErrConnectionFailed
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
