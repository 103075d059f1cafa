package i18n_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18n"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates engine with defaults", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository()
		require.NoError(t, err)

		engine, err := i18n.New(repo)
		require.NoError(t, err)
		require.NotNil(t, engine)
		require.Same(t, repo, engine.Repository())
	})

	t.Run("rejects nil repository", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(nil)
		require.ErrorIs(t, err, i18n.ErrNilRepository)
	})

	t.Run("rejects empty identifiers", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository()
		require.NoError(t, err)

		_, err = i18n.New(repo, i18n.WithIdentifiers("", "}"))
		require.ErrorIs(t, err, i18n.ErrEmptyIdentifiers)
	})

	t.Run("rejects invalid plural rule options", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository()
		require.NoError(t, err)

		_, err = i18n.New(repo, i18n.WithPluralRule("", 2, func(int) int { return 0 }))
		require.ErrorIs(t, err, i18n.ErrEmptyLocale)

		_, err = i18n.New(repo, i18n.WithPluralRule("en", 2, nil))
		require.ErrorIs(t, err, i18n.ErrNilPluralRule)

		_, err = i18n.New(repo, i18n.WithPluralRule("en", 0, func(int) int { return 0 }))
		require.ErrorIs(t, err, i18n.ErrInvalidPluralForms)
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("exact locale wins", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"greeting": "hello"}),
			i18n.WithTranslations("de", map[string]any{"greeting": "hallo"}),
		)
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		require.Equal(t, "hallo", engine.TIn("de", "greeting"))
		require.Equal(t, "hello", engine.TIn("en", "greeting"))
	})

	t.Run("regional locale falls back to its parent", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"greeting": "hello"}),
			i18n.WithTranslations("de", map[string]any{"greeting": "hallo"}),
		)
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		require.Equal(t, "hallo", engine.TIn("de-CH", "greeting"))
	})

	t.Run("parent hit pluralizes with the parent rule", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("ru", map[string]any{
				"files": []string{"файл", "файла", "файлов"},
			}),
		)
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		require.Equal(t, "файлов", engine.TnIn("ru-RU", "files", 5))
	})

	t.Run("fallback locale serves missing keys", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"only.english": "english text"}),
			i18n.WithTranslations("de", map[string]any{"greeting": "hallo"}),
			i18n.WithFallbackLocale("en"),
		)
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		require.Equal(t, "english text", engine.TIn("de", "only.english"))
	})

	t.Run("fallback value pluralizes with the requested locale", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"files": "one:::few:::many"}),
			i18n.WithFallbackLocale("en"),
		)
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		// Polish picks the third form for 5, German the second.
		require.Equal(t, "many", engine.TnIn("pl", "files", 5))
		require.Equal(t, "few", engine.TnIn("de", "files", 5))
	})

	t.Run("missing fallback table renders the default", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"greeting": "hello"}),
			i18n.WithFallbackLocale("fr"),
		)
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		require.Equal(t, "nothing here", engine.Resolve(i18n.Request{
			Locale:  "xx",
			Key:     "greeting",
			Default: "nothing here",
		}).String())
	})

	t.Run("missing key everywhere renders the default", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"greeting": "hello"}),
		)
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		got := engine.Resolve(i18n.Request{
			Locale:       "en",
			Key:          "missing",
			Default:      "hi {name}",
			Replacements: i18n.M{"name": "Ada"},
		})
		require.Equal(t, "hi Ada", got.String())
	})

	t.Run("default falls back to the key itself", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"greeting": "hello"}),
		)
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		require.Equal(t, "missing.key", engine.T("missing.key"))
	})

	t.Run("empty locale yields the default untouched", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		repo := &staticRepo{table: map[string]map[string]any{}}
		engine, err := i18n.New(repo,
			i18n.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		)
		require.NoError(t, err)

		got := engine.Resolve(i18n.Request{
			Key:          "greeting",
			Default:      "hi {name}",
			Replacements: i18n.M{"name": "Ada"},
		})
		require.Equal(t, "hi {name}", got.String())
		assert.Contains(t, buf.String(), "no locale to resolve against")
	})

	t.Run("uses the active locale when the request has none", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"greeting": "hello"}),
			i18n.WithTranslations("de", map[string]any{"greeting": "hallo"}),
			i18n.WithActiveLocale("de"),
		)
		require.NoError(t, err)
		engine, err := i18n.New(repo)
		require.NoError(t, err)

		require.Equal(t, "hallo", engine.T("greeting"))

		require.NoError(t, repo.SetLocale("en"))
		require.Equal(t, "hello", engine.T("greeting"))
	})
}

func TestNotFoundHandler(t *testing.T) {
	t.Parallel()

	t.Run("stores a non-empty result for the requested locale", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"greeting": "hello"}),
		)
		require.NoError(t, err)

		engine, err := i18n.New(repo, i18n.WithNotFoundHandler(
			func(_ context.Context, _, _, _ string) (string, error) {
				return "machine translated", nil
			},
		))
		require.NoError(t, err)

		// The synchronous result is unaffected by the handler.
		require.Equal(t, "missing.key", engine.TIn("de", "missing.key"))

		require.Eventually(t, func() bool {
			_, ok := repo.Table()["de"]["missing.key"]
			return ok
		}, time.Second, 10*time.Millisecond)

		require.Equal(t, "machine translated", engine.TIn("de", "missing.key"))
	})

	t.Run("receives the locale, key, and default", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"greeting": "hello"}),
		)
		require.NoError(t, err)

		type call struct{ locale, key, def string }
		calls := make(chan call, 1)

		engine, err := i18n.New(repo, i18n.WithNotFoundHandler(
			func(_ context.Context, locale, key, defaultValue string) (string, error) {
				calls <- call{locale, key, defaultValue}
				return "", nil
			},
		))
		require.NoError(t, err)

		engine.Resolve(i18n.Request{Locale: "de", Key: "missing.key", Default: "fallback text"})

		select {
		case got := <-calls:
			require.Equal(t, "de", got.locale)
			require.Equal(t, "missing.key", got.key)
			require.Equal(t, "fallback text", got.def)
		case <-time.After(time.Second):
			t.Fatal("handler was not invoked")
		}
	})

	t.Run("ignores empty results and errors", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"greeting": "hello"}),
		)
		require.NoError(t, err)

		invoked := make(chan struct{}, 2)
		var fail atomic.Bool
		fail.Store(true)

		engine, err := i18n.New(repo, i18n.WithNotFoundHandler(
			func(_ context.Context, _, _, _ string) (string, error) {
				defer func() { invoked <- struct{}{} }()
				if fail.Load() {
					return "", errors.New("upstream down")
				}
				return "", nil
			},
		))
		require.NoError(t, err)

		engine.TIn("de", "missing.key")
		<-invoked
		fail.Store(false)
		engine.TIn("de", "missing.key")
		<-invoked

		time.Sleep(50 * time.Millisecond)
		_, ok := repo.Table()["de"]["missing.key"]
		require.False(t, ok)
	})

	t.Run("fires even when the fallback locale serves the key", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("en", map[string]any{"shared": "from english"}),
			i18n.WithFallbackLocale("en"),
		)
		require.NoError(t, err)

		invoked := make(chan struct{}, 1)
		engine, err := i18n.New(repo, i18n.WithNotFoundHandler(
			func(_ context.Context, _, _, _ string) (string, error) {
				invoked <- struct{}{}
				return "", nil
			},
		))
		require.NoError(t, err)

		require.Equal(t, "from english", engine.TIn("de", "shared"))

		select {
		case <-invoked:
		case <-time.After(time.Second):
			t.Fatal("handler was not invoked")
		}
	})

	t.Run("stays quiet on a regional parent hit", func(t *testing.T) {
		t.Parallel()
		repo, err := i18n.NewMemoryRepository(
			i18n.WithTranslations("de", map[string]any{"greeting": "hallo"}),
		)
		require.NoError(t, err)

		invoked := make(chan struct{}, 1)
		engine, err := i18n.New(repo, i18n.WithNotFoundHandler(
			func(_ context.Context, _, _, _ string) (string, error) {
				invoked <- struct{}{}
				return "", nil
			},
		))
		require.NoError(t, err)

		require.Equal(t, "hallo", engine.TIn("de-CH", "greeting"))

		select {
		case <-invoked:
			t.Fatal("handler fired for a resolvable key")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestKeyExists(t *testing.T) {
	t.Parallel()

	repo, err := i18n.NewMemoryRepository(
		i18n.WithTranslations("de-CH", map[string]any{"regional": "x"}),
		i18n.WithTranslations("de", map[string]any{"parent": "y"}),
		i18n.WithTranslations("en", map[string]any{"fallback": "z"}),
		i18n.WithActiveLocale("de-CH"),
		i18n.WithFallbackLocale("en"),
	)
	require.NoError(t, err)
	engine, err := i18n.New(repo)
	require.NoError(t, err)

	t.Run("strict scope checks only the exact locale", func(t *testing.T) {
		t.Parallel()
		require.True(t, engine.KeyExists("regional", i18n.ScopeStrict))
		require.False(t, engine.KeyExists("parent", i18n.ScopeStrict))
		require.False(t, engine.KeyExists("fallback", i18n.ScopeStrict))
	})

	t.Run("locale scope includes the regional parent", func(t *testing.T) {
		t.Parallel()
		require.True(t, engine.KeyExists("regional", i18n.ScopeLocale))
		require.True(t, engine.KeyExists("parent", i18n.ScopeLocale))
		require.False(t, engine.KeyExists("fallback", i18n.ScopeLocale))
	})

	t.Run("fallback scope walks the whole chain", func(t *testing.T) {
		t.Parallel()
		require.True(t, engine.KeyExists("regional", i18n.ScopeFallback))
		require.True(t, engine.KeyExists("parent", i18n.ScopeFallback))
		require.True(t, engine.KeyExists("fallback", i18n.ScopeFallback))
		require.False(t, engine.KeyExists("absent", i18n.ScopeFallback))
	})
}

func TestLocales(t *testing.T) {
	t.Parallel()

	repo, err := i18n.NewMemoryRepository(
		i18n.WithTranslations("en", map[string]any{"a": "x"}),
		i18n.WithTranslations("de", map[string]any{"b": "y"}),
		i18n.WithTranslations("de-CH", map[string]any{"c": "z"}),
	)
	require.NoError(t, err)
	engine, err := i18n.New(repo)
	require.NoError(t, err)

	require.Equal(t, []string{"de", "de-CH", "en"}, engine.Locales())
	require.True(t, engine.LocaleExists("de"))
	require.False(t, engine.LocaleExists("fr"))
}

// staticRepo is a minimal Repository used to exercise engine behavior that
// MemoryRepository guards against, like an empty active locale.
type staticRepo struct {
	active   string
	fallback string
	table    map[string]map[string]any
}

func (r *staticRepo) ActiveLocale() string                       { return r.active }
func (r *staticRepo) FallbackLocale() string                     { return r.fallback }
func (r *staticRepo) Table() map[string]map[string]any           { return r.table }
func (r *staticRepo) SetLocale(string) error                     { return nil }
func (r *staticRepo) SetFallbackLocale(string) error             { return nil }
func (r *staticRepo) AddLocale(string, map[string]any) error     { return nil }
func (r *staticRepo) ReplaceLocale(string, map[string]any) error { return nil }
func (r *staticRepo) RemoveLocale(string) error                  { return nil }
