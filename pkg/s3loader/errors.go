package s3loader

import "errors"

var (
	ErrNilClient      = errors.New("s3loader: client cannot be nil")
	ErrInvalidConfig  = errors.New("s3loader: invalid configuration")
	ErrListFailed     = errors.New("s3loader: failed to list objects")
	ErrFetchFailed    = errors.New("s3loader: failed to fetch object")
	ErrObjectNotFound = errors.New("s3loader: object not found")
	ErrAccessDenied   = errors.New("s3loader: access denied")
	ErrInvalidObject  = errors.New("s3loader: invalid translation object")
)
