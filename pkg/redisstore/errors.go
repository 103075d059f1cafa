package redisstore

import "errors"

var (
	ErrNilClient          = errors.New("redisstore: redis client cannot be nil")
	ErrEmptyConnectionURL = errors.New("redisstore: empty connection URL")
	ErrFailedToParseURL   = errors.New("redisstore: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("redisstore: failed to establish connection")
	ErrInvalidConfig      = errors.New("redisstore: invalid configuration")
	ErrHealthcheckFailed  = errors.New("redisstore: healthcheck failed")
)
