package redisstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18n/pkg/redisstore"
)

func TestOpenValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()

		store, err := redisstore.Open(ctx, "")
		require.Nil(t, store)
		require.ErrorIs(t, err, redisstore.ErrEmptyConnectionURL)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{
			"http://localhost:6379",
			"localhost:6379",
			"postgres://localhost:6379",
		} {
			store, err := redisstore.Open(ctx, url)
			require.Nil(t, store)
			require.ErrorIs(t, err, redisstore.ErrFailedToParseURL)
		}
	})

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()

		store, err := redisstore.Open(ctx, "redis://localhost:6379/notanumber")
		require.Nil(t, store)
		require.ErrorIs(t, err, redisstore.ErrFailedToParseURL)
	})
}
