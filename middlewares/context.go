package middlewares

import (
	"context"

	"github.com/dmitrymomot/i18n"
)

// localeKey is an unexported key type to avoid context key collisions.
type localeKey struct{}

// translatorKey is an unexported key type to avoid context key collisions.
type translatorKey struct{}

// WithLocale returns a new context carrying the resolved locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFromContext extracts the locale stored by the Language middleware.
// The second return value indicates whether a locale was present.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(localeKey{}).(string)
	return locale, ok
}

// WithTranslator returns a new context carrying the provided Translator.
func WithTranslator(ctx context.Context, tr *i18n.Translator) context.Context {
	return context.WithValue(ctx, translatorKey{}, tr)
}

// TranslatorFromContext extracts the Translator stored by the Language
// middleware. The second return value indicates whether one was present.
func TranslatorFromContext(ctx context.Context) (*i18n.Translator, bool) {
	tr, ok := ctx.Value(translatorKey{}).(*i18n.Translator)
	return tr, ok
}
