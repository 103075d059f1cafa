package refresh

import "errors"

var (
	// ErrNilSource is returned when the catalog source is nil.
	ErrNilSource = errors.New("refresh: nil source")

	// ErrInvalidSchedule is returned when the cron expression cannot be
	// parsed.
	ErrInvalidSchedule = errors.New("refresh: invalid schedule")

	// ErrAlreadyStarted is returned when starting a refresher that is
	// already running.
	ErrAlreadyStarted = errors.New("refresh: already started")

	// ErrNotStarted is returned when stopping a refresher that is not
	// running.
	ErrNotStarted = errors.New("refresh: not started")
)
