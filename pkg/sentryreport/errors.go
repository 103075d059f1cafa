package sentryreport

import "errors"

var (
	// ErrInvalidConfig is returned when the environment config cannot be
	// parsed.
	ErrInvalidConfig = errors.New("sentryreport: invalid config")

	// ErrInitFailed is returned when the Sentry client cannot be created.
	ErrInitFailed = errors.New("sentryreport: init failed")
)
