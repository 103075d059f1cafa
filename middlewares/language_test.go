package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18n"
	"github.com/dmitrymomot/i18n/middlewares"
)

func newEngine(t *testing.T) *i18n.I18n {
	t.Helper()
	repo, err := i18n.NewMemoryRepository(
		i18n.WithTranslations("en", map[string]any{"greeting": "hello {name}"}),
		i18n.WithTranslations("de", map[string]any{"greeting": "hallo {name}"}),
		i18n.WithTranslations("pl", map[string]any{"greeting": "cześć {name}"}),
	)
	require.NoError(t, err)
	engine, err := i18n.New(repo)
	require.NoError(t, err)
	return engine
}

// capture runs the middleware around a handler that records the context
// values and returns what it saw.
func capture(t *testing.T, engine *i18n.I18n, r *http.Request, opts ...middlewares.LanguageOption) (string, *i18n.Translator) {
	t.Helper()

	var (
		locale string
		tr     *i18n.Translator
	)
	handler := middlewares.Language(engine, opts...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale, _ = middlewares.LocaleFromContext(r.Context())
		tr, _ = middlewares.TranslatorFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, tr)
	return locale, tr
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	t.Run("query parameter wins", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
		r.AddCookie(&http.Cookie{Name: "lang", Value: "pl"})
		r.Header.Set("Accept-Language", "pl")

		locale, tr := capture(t, newEngine(t), r)
		assert.Equal(t, "de", locale)
		assert.Equal(t, "hallo Ada", tr.T("greeting", i18n.M{"name": "Ada"}))
	})

	t.Run("cookie beats accept-language", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "lang", Value: "pl"})
		r.Header.Set("Accept-Language", "de")

		locale, _ := capture(t, newEngine(t), r)
		assert.Equal(t, "pl", locale)
	})

	t.Run("negotiates accept-language against the catalog", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Language", "fr;q=0.9, de;q=0.8")

		locale, tr := capture(t, newEngine(t), r)
		assert.Equal(t, "de", locale)
		assert.Equal(t, "hallo Ada", tr.T("greeting", i18n.M{"name": "Ada"}))
	})

	t.Run("regional header matches the base locale", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Language", "de-CH")

		locale, _ := capture(t, newEngine(t), r)
		assert.Equal(t, "de", locale)
	})

	t.Run("falls back to the active locale", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		locale, tr := capture(t, newEngine(t), r)
		assert.Equal(t, "en", locale)
		assert.Equal(t, "en", tr.Locale())
	})

	t.Run("custom source chain", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
		r.Header.Set("X-Locale", "pl")

		locale, _ := capture(t, newEngine(t), r, middlewares.WithLanguageSources(
			middlewares.FromHeader("X-Locale"),
			middlewares.FromQuery("lang"),
		))
		assert.Equal(t, "pl", locale)
	})

	t.Run("translator format follows the locale", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)

		_, tr := capture(t, newEngine(t), r)
		assert.Equal(t, "19,99 €", tr.FormatCurrency(19.99))
	})

	t.Run("format map overrides the predefined format", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)

		_, tr := capture(t, newEngine(t), r, middlewares.WithLanguageFormats(map[string]*i18n.LocaleFormat{
			"de": i18n.NewLocaleFormat(i18n.WithCurrencySymbol("CHF"), i18n.WithCurrencyGap()),
		}))
		assert.Equal(t, "CHF 19.99", tr.FormatCurrency(19.99))
	})

	t.Run("default format applies to unmapped locales", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?lang=xx", nil)

		_, tr := capture(t, newEngine(t), r, middlewares.WithLanguageDefaultFormat(i18n.FormatDeDE()))
		assert.Equal(t, "1.234,56", tr.FormatNumber(1234.56))
	})

	t.Run("panics without an engine", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { middlewares.Language(nil) })
	})
}

func TestSources(t *testing.T) {
	t.Parallel()

	t.Run("empty values are misses", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?lang=", nil)
		r.AddCookie(&http.Cookie{Name: "lang", Value: ""})

		_, ok := middlewares.FromQuery("lang")(r)
		assert.False(t, ok)
		_, ok = middlewares.FromCookie("lang")(r)
		assert.False(t, ok)
		_, ok = middlewares.FromHeader("X-Locale")(r)
		assert.False(t, ok)
	})

	t.Run("accept-language negotiates against the given set", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Language", "pl;q=0.5, de")

		locale, ok := middlewares.FromAcceptLanguage([]string{"en", "pl"})(r)
		require.True(t, ok)
		assert.Equal(t, "pl", locale)
	})

	t.Run("accept-language misses without a header", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		_, ok := middlewares.FromAcceptLanguage([]string{"en"})(r)
		assert.False(t, ok)
	})
}
