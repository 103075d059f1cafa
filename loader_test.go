package i18n_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18n"
)

func TestLoadDir(t *testing.T) {
	t.Parallel()

	t.Run("loads root files and locale directories", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en.json": &fstest.MapFile{Data: []byte(`{
				"greeting": "Hello {name}",
				"nav": {"home": "Home"}
			}`)},
			"de/common.yaml": &fstest.MapFile{Data: []byte(
				"greeting: Hallo {name}\nnav:\n  home: Startseite\n",
			)},
			"de/extra.yml": &fstest.MapFile{Data: []byte(
				"farewell: Tschüss\n",
			)},
			"notes.txt": &fstest.MapFile{Data: []byte("not a catalog")},
		}

		repo, err := i18n.NewMemoryRepository()
		require.NoError(t, err)
		require.NoError(t, i18n.LoadDir(context.Background(), fsys, repo))

		table := repo.Table()
		require.Equal(t, "Hello {name}", table["en"]["greeting"])
		require.Equal(t, "Home", table["en"]["nav.home"])
		require.Equal(t, "Hallo {name}", table["de"]["greeting"])
		require.Equal(t, "Startseite", table["de"]["nav.home"])
		require.Equal(t, "Tschüss", table["de"]["farewell"])
		require.Len(t, table, 2)
	})

	t.Run("parses json sequences as plural variants", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"pl.json": &fstest.MapFile{Data: []byte(`{
				"apples": ["jedno jabłko", "kilka jabłek", "wiele jabłek"]
			}`)},
		}

		repo, err := i18n.NewMemoryRepository()
		require.NoError(t, err)
		require.NoError(t, i18n.LoadDir(context.Background(), fsys, repo))

		require.Equal(t,
			[]string{"jedno jabłko", "kilka jabłek", "wiele jabłek"},
			repo.Table()["pl"]["apples"],
		)
	})

	t.Run("wraps parse failures with the offending path", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en.json": &fstest.MapFile{Data: []byte(`{"broken"`)},
		}

		repo, err := i18n.NewMemoryRepository()
		require.NoError(t, err)

		err = i18n.LoadDir(context.Background(), fsys, repo)
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
		require.ErrorContains(t, err, "en.json")
	})

	t.Run("rejects nil repository", func(t *testing.T) {
		t.Parallel()
		err := i18n.LoadDir(context.Background(), fstest.MapFS{}, nil)
		require.ErrorIs(t, err, i18n.ErrNilRepository)
	})

	t.Run("respects a canceled context", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"en.json": &fstest.MapFile{Data: []byte(`{"a": "b"}`)},
		}

		repo, err := i18n.NewMemoryRepository()
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, i18n.LoadDir(ctx, fsys, repo), context.Canceled)
	})
}
