package redisstore

import (
	"context"
	"errors"
)

// Healthcheck returns a closure that validates Redis connectivity for health
// endpoints. Compatible with health runners that expect func(context.Context) error.
func (s *Store) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if err := s.client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
