package refresh

import (
	"log/slog"
	"time"
)

// Option configures a Refresher.
type Option func(*settings)

type settings struct {
	schedule   string
	interval   time.Duration
	timeout    time.Duration
	logger     *slog.Logger
	onError    func(error)
	runOnStart bool
}

func defaultSettings() settings {
	return settings{
		schedule: "0 * * * *",
		timeout:  time.Minute,
	}
}

// WithSchedule sets the sync schedule as a cron expression
// (5 fields: min hour day month weekday). Default is hourly.
func WithSchedule(expr string) Option {
	return func(s *settings) {
		if expr != "" {
			s.schedule = expr
		}
	}
}

// WithInterval replaces the cron schedule with a fixed interval.
// Intervals under a second round up to a second.
func WithInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithSyncTimeout caps a single sync run. Default is 1m.
func WithSyncTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRunOnStart syncs immediately when the refresher starts instead of
// waiting for the first tick.
func WithRunOnStart() Option {
	return func(s *settings) {
		s.runOnStart = true
	}
}

// WithLogger sets the logger for sync diagnostics. Defaults to a noop
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithErrorHandler sets a hook invoked when a sync run fails. Failures are
// logged regardless of the hook.
func WithErrorHandler(fn func(error)) Option {
	return func(s *settings) {
		s.onError = fn
	}
}
