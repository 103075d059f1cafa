package missing

import "errors"

var (
	// ErrPoolRequired is returned when creating a queue or manager without
	// a database pool.
	ErrPoolRequired = errors.New("missing: pool is required")

	// ErrNilResolver is returned when creating a manager without a resolve
	// function.
	ErrNilResolver = errors.New("missing: nil resolver")

	// ErrEmptyKey is returned when reporting a miss without a key.
	ErrEmptyKey = errors.New("missing: empty key")

	// ErrAlreadyStarted is returned when starting a manager that is already
	// running.
	ErrAlreadyStarted = errors.New("missing: already started")

	// ErrNotStarted is returned when stopping a manager that is not running.
	ErrNotStarted = errors.New("missing: not started")
)
