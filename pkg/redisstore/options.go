package redisstore

import (
	"io"
	"log/slog"
	"time"
)

// Option configures the connection and the store.
type Option func(*settings)

type settings struct {
	// connection, applied by Open only
	poolSize      int
	minIdleConns  int
	retryAttempts int
	retryInterval time.Duration
	readTimeout   time.Duration
	writeTimeout  time.Duration
	dialTimeout   time.Duration

	// store behavior
	prefix       string
	timeout      time.Duration
	logger       *slog.Logger
	refreshEvery time.Duration
	notify       bool
}

func defaultSettings() *settings {
	return &settings{
		poolSize:      10,
		minIdleConns:  5,
		retryAttempts: 3,
		retryInterval: 5 * time.Second,
		readTimeout:   3 * time.Second,
		writeTimeout:  3 * time.Second,
		dialTimeout:   5 * time.Second,
		prefix:        "i18n",
		timeout:       5 * time.Second,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithPoolSize sets the maximum number of connections in the pool.
// Default: 10
func WithPoolSize(n int) Option {
	return func(s *settings) {
		s.poolSize = n
	}
}

// WithMinIdleConns sets the minimum number of idle connections kept open.
// Default: 5
func WithMinIdleConns(n int) Option {
	return func(s *settings) {
		s.minIdleConns = n
	}
}

// WithRetry configures connection retry behavior.
// Default: 3 attempts, 5 second base interval with exponential backoff.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(s *settings) {
		s.retryAttempts = attempts
		s.retryInterval = interval
	}
}

// WithReadTimeout sets the timeout for read operations.
// Default: 3 seconds
func WithReadTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.readTimeout = d
	}
}

// WithWriteTimeout sets the timeout for write operations.
// Default: 3 seconds
func WithWriteTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.writeTimeout = d
	}
}

// WithDialTimeout sets the timeout for establishing new connections.
// Default: 5 seconds
func WithDialTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.dialTimeout = d
	}
}

// WithPrefix sets the key prefix for all store keys. An empty prefix keeps
// the default.
// Default: "i18n"
func WithPrefix(prefix string) Option {
	return func(s *settings) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithLogger sets the logger for background refresh and publish diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOperationTimeout sets the deadline applied to write-through mutations
// and background reloads.
// Default: 5 seconds
func WithOperationTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRefreshInterval enables periodic catalog reloads from Redis.
// Default: disabled
func WithRefreshInterval(d time.Duration) Option {
	return func(s *settings) {
		s.refreshEvery = d
	}
}

// WithNotifications enables pub/sub invalidation: mutations publish to the
// events channel and the store reloads when another instance publishes.
// Default: disabled
func WithNotifications() Option {
	return func(s *settings) {
		s.notify = true
	}
}
