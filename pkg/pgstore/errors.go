package pgstore

import "errors"

var (
	ErrNilPool           = errors.New("pgstore: connection pool cannot be nil")
	ErrNilDB             = errors.New("pgstore: database handle cannot be nil")
	ErrInvalidConfig     = errors.New("pgstore: invalid configuration")
	ErrFailedToParseDSN  = errors.New("pgstore: failed to parse connection string")
	ErrConnectionFailed  = errors.New("pgstore: failed to open database connection")
	ErrSetDialect        = errors.New("pgstore: failed to set migration dialect")
	ErrApplyMigrations   = errors.New("pgstore: failed to apply migrations")
	ErrHealthcheckFailed = errors.New("pgstore: healthcheck failed")
)
