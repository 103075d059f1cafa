package pgstore_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18n"
	"github.com/dmitrymomot/i18n/pkg/pgstore"
)

func expectEmptyLoad(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT locale FROM i18n_locales").
		WillReturnRows(sqlmock.NewRows([]string{"locale"}))
	mock.ExpectQuery("SELECT locale, key, value FROM i18n_translations").
		WillReturnRows(sqlmock.NewRows([]string{"locale", "key", "value"}))
	mock.ExpectQuery("SELECT name, value FROM i18n_settings").
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}))
}

// newEmptyStore builds a store against a mock holding no catalog data.
func newEmptyStore(t *testing.T) (*pgstore.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	expectEmptyLoad(mock)

	store, err := pgstore.NewWithDB(context.Background(), db)
	require.NoError(t, err)

	return store, mock
}

func TestNewWithDB(t *testing.T) {
	t.Parallel()

	t.Run("loads the catalog into the mirror", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT locale FROM i18n_locales").
			WillReturnRows(sqlmock.NewRows([]string{"locale"}).AddRow("en").AddRow("uk"))
		mock.ExpectQuery("SELECT locale, key, value FROM i18n_translations").
			WillReturnRows(sqlmock.NewRows([]string{"locale", "key", "value"}).
				AddRow("en", "greeting", []byte(`"hello {name}"`)).
				AddRow("en", "items", []byte(`["one item","{count} items"]`)))
		mock.ExpectQuery("SELECT name, value FROM i18n_settings").
			WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).
				AddRow("active_locale", "en").
				AddRow("fallback_locale", "en"))

		store, err := pgstore.NewWithDB(context.Background(), db)
		require.NoError(t, err)

		assert.Equal(t, "en", store.ActiveLocale())
		assert.Equal(t, "en", store.FallbackLocale())

		table := store.Table()
		assert.Equal(t, "hello {name}", table["en"]["greeting"])
		assert.Equal(t, []string{"one item", "{count} items"}, table["en"]["items"])

		// The registered-but-empty locale is still present.
		_, ok := table["uk"]
		assert.True(t, ok)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("defaults the locale selection on a fresh schema", func(t *testing.T) {
		t.Parallel()

		store, _ := newEmptyStore(t)
		assert.Equal(t, "en", store.ActiveLocale())
		assert.Equal(t, "en", store.FallbackLocale())
		assert.Empty(t, store.Table())
	})

	t.Run("rejects a nil handle", func(t *testing.T) {
		t.Parallel()

		_, err := pgstore.NewWithDB(context.Background(), nil)
		require.ErrorIs(t, err, pgstore.ErrNilDB)

		_, err = pgstore.New(context.Background(), nil)
		require.ErrorIs(t, err, pgstore.ErrNilPool)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT locale FROM i18n_locales").
			WillReturnRows(sqlmock.NewRows([]string{"locale"}))
		mock.ExpectQuery("SELECT locale, key, value FROM i18n_translations").
			WillReturnRows(sqlmock.NewRows([]string{"locale", "key", "value"}).
				AddRow("en", "greeting", []byte("not-json")))

		_, err = pgstore.NewWithDB(context.Background(), db)
		require.Error(t, err)
		require.ErrorContains(t, err, "decoding en/greeting")
	})
}

func TestStoreMutations(t *testing.T) {
	t.Parallel()

	t.Run("add locale writes through and merges the mirror", func(t *testing.T) {
		t.Parallel()

		store, mock := newEmptyStore(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO i18n_locales").
			WithArgs("de").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO i18n_translations").
			WithArgs("de", "common.ok", []byte(`"gut"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO i18n_translations").
			WithArgs("de", "greeting", []byte(`"hallo {name}"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.AddLocale("de", map[string]any{
			"greeting": "hallo {name}",
			"common":   map[string]any{"ok": "gut"},
		})
		require.NoError(t, err)

		table := store.Table()
		assert.Equal(t, "hallo {name}", table["de"]["greeting"])
		assert.Equal(t, "gut", table["de"]["common.ok"])

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("add locale with an empty tree still registers it", func(t *testing.T) {
		t.Parallel()

		store, mock := newEmptyStore(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO i18n_locales").
			WithArgs("uk").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, store.AddLocale("uk", nil))

		_, ok := store.Table()["uk"]
		assert.True(t, ok)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replace locale drops previous rows", func(t *testing.T) {
		t.Parallel()

		store, mock := newEmptyStore(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO i18n_locales").
			WithArgs("de").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO i18n_translations").
			WithArgs("de", "old", []byte(`"alt"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, store.AddLocale("de", map[string]any{"old": "alt"}))

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO i18n_locales").
			WithArgs("de").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM i18n_translations").
			WithArgs("de").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO i18n_translations").
			WithArgs("de", "greeting", []byte(`"hallo"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, store.ReplaceLocale("de", map[string]any{"greeting": "hallo"}))

		table := store.Table()
		assert.Equal(t, "hallo", table["de"]["greeting"])
		assert.NotContains(t, table["de"], "old")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("remove locale clears a matching active selection", func(t *testing.T) {
		t.Parallel()

		store, mock := newEmptyStore(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM i18n_locales").
			WithArgs("en").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM i18n_translations").
			WithArgs("en").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO i18n_settings").
			WithArgs("active_locale", "").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, store.RemoveLocale("en"))

		assert.Empty(t, store.ActiveLocale())
		assert.NotContains(t, store.Table(), "en")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("remove locale keeps an unrelated active selection", func(t *testing.T) {
		t.Parallel()

		store, mock := newEmptyStore(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM i18n_locales").
			WithArgs("de").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM i18n_translations").
			WithArgs("de").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		require.NoError(t, store.RemoveLocale("de"))
		assert.Equal(t, "en", store.ActiveLocale())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("setters write the settings table", func(t *testing.T) {
		t.Parallel()

		store, mock := newEmptyStore(t)

		mock.ExpectExec("INSERT INTO i18n_settings").
			WithArgs("active_locale", "de").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO i18n_settings").
			WithArgs("fallback_locale", "pl").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.SetLocale("de"))
		require.NoError(t, store.SetFallbackLocale("pl"))

		assert.Equal(t, "de", store.ActiveLocale())
		assert.Equal(t, "pl", store.FallbackLocale())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mutations reject an empty locale", func(t *testing.T) {
		t.Parallel()

		store, _ := newEmptyStore(t)

		require.ErrorIs(t, store.SetLocale(""), i18n.ErrEmptyLocale)
		require.ErrorIs(t, store.SetFallbackLocale(""), i18n.ErrEmptyLocale)
		require.ErrorIs(t, store.AddLocale("", nil), i18n.ErrEmptyLocale)
		require.ErrorIs(t, store.ReplaceLocale("", nil), i18n.ErrEmptyLocale)
		require.ErrorIs(t, store.RemoveLocale(""), i18n.ErrEmptyLocale)
	})

	t.Run("failed writes roll back and leave the mirror unchanged", func(t *testing.T) {
		t.Parallel()

		store, mock := newEmptyStore(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO i18n_locales").
			WithArgs("de").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO i18n_translations").
			WithArgs("de", "greeting", []byte(`"hallo"`)).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := store.AddLocale("de", map[string]any{"greeting": "hallo"})
		require.Error(t, err)

		assert.NotContains(t, store.Table(), "de")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReload(t *testing.T) {
	t.Parallel()

	store, mock := newEmptyStore(t)

	mock.ExpectQuery("SELECT locale FROM i18n_locales").
		WillReturnRows(sqlmock.NewRows([]string{"locale"}).AddRow("pl"))
	mock.ExpectQuery("SELECT locale, key, value FROM i18n_translations").
		WillReturnRows(sqlmock.NewRows([]string{"locale", "key", "value"}).
			AddRow("pl", "apples", []byte(`["jabłko","jabłka","jabłek"]`)))
	mock.ExpectQuery("SELECT name, value FROM i18n_settings").
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).
			AddRow("active_locale", "pl"))

	require.NoError(t, store.Reload(context.Background()))

	assert.Equal(t, "pl", store.ActiveLocale())
	assert.Equal(t, []string{"jabłko", "jabłka", "jabłek"}, store.Table()["pl"]["apples"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServesEngine(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT locale FROM i18n_locales").
		WillReturnRows(sqlmock.NewRows([]string{"locale"}).AddRow("en").AddRow("pl"))
	mock.ExpectQuery("SELECT locale, key, value FROM i18n_translations").
		WillReturnRows(sqlmock.NewRows([]string{"locale", "key", "value"}).
			AddRow("en", "apples", []byte(`"{count} apple:::{count} apples"`)).
			AddRow("pl", "apples", []byte(`["{count} jabłko","{count} jabłka","{count} jabłek"]`)))
	mock.ExpectQuery("SELECT name, value FROM i18n_settings").
		WillReturnRows(sqlmock.NewRows([]string{"name", "value"}).
			AddRow("active_locale", "pl").
			AddRow("fallback_locale", "en"))

	store, err := pgstore.NewWithDB(context.Background(), db)
	require.NoError(t, err)

	engine, err := i18n.New(store)
	require.NoError(t, err)

	assert.Equal(t, "5 jabłek", engine.Tn("apples", 5))
	assert.Equal(t, "2 apples", engine.TnIn("en", "apples", 2))
}
