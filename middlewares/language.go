package middlewares

import (
	"net/http"

	"github.com/dmitrymomot/i18n"
)

// DefaultLanguageParam is the query parameter checked for a locale override.
const DefaultLanguageParam = "lang"

// DefaultLanguageCookie is the cookie checked for a persisted locale.
const DefaultLanguageCookie = "lang"

// LanguageConfig configures the Language middleware.
type LanguageConfig struct {
	Sources       []Source
	Formats       map[string]*i18n.LocaleFormat
	DefaultFormat *i18n.LocaleFormat
}

// LanguageOption configures LanguageConfig.
type LanguageOption func(*LanguageConfig)

// WithLanguageSources replaces the default source chain.
func WithLanguageSources(sources ...Source) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Sources = sources
	}
}

// WithLanguageFormats sets the locale-to-format mapping.
func WithLanguageFormats(m map[string]*i18n.LocaleFormat) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Formats = m
	}
}

// WithLanguageDefaultFormat sets the format used for locales absent
// from the format mapping.
func WithLanguageDefaultFormat(f *i18n.LocaleFormat) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.DefaultFormat = f
	}
}

// Language returns middleware that resolves the request locale, binds a
// Translator to it, and stores both in the request context.
//
// The default source chain is the "lang" query parameter, then the "lang"
// cookie, then the Accept-Language header negotiated against the locales
// currently registered in the engine's repository. When every source
// misses, the repository's active locale is used.
func Language(engine *i18n.I18n, opts ...LanguageOption) func(http.Handler) http.Handler {
	if engine == nil {
		panic("middlewares: i18n engine is not provided")
	}

	cfg := &LanguageConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = []Source{
			FromQuery(DefaultLanguageParam),
			FromCookie(DefaultLanguageCookie),
			fromEngineAcceptLanguage(engine),
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := extract(cfg.Sources, r)
			if locale == "" {
				locale = engine.Repository().ActiveLocale()
			}

			format := cfg.Formats[locale]
			if format == nil {
				format = cfg.DefaultFormat
			}
			if format == nil {
				format = i18n.FormatFor(locale)
			}

			ctx := WithLocale(r.Context(), locale)
			ctx = WithTranslator(ctx, i18n.NewTranslator(engine, locale, format))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extract tries the sources in order and returns the first non-empty value.
func extract(sources []Source, r *http.Request) string {
	for _, src := range sources {
		if v, ok := src(r); ok && v != "" {
			return v
		}
	}
	return ""
}

// fromEngineAcceptLanguage negotiates the Accept-Language header against the
// engine's catalog on every request, so locales registered after the
// middleware is mounted still become negotiable.
func fromEngineAcceptLanguage(engine *i18n.I18n) Source {
	return func(r *http.Request) (string, bool) {
		header := r.Header.Get("Accept-Language")
		if header == "" {
			return "", false
		}
		locale := i18n.NegotiateLocale(engine.Locales(), i18n.ParseAcceptLanguage(header)...)
		return locale, locale != ""
	}
}
