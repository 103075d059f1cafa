package i18n

import "time"

// Translator is a view of the engine bound to a single locale and a display
// format, convenient to pass around per request or per user session.
type Translator struct {
	engine *I18n
	locale string
	format *LocaleFormat
}

// NewTranslator binds the engine to a locale. A nil format defaults to en-US
// conventions. Panics if engine is nil since a translator cannot operate
// without one.
func NewTranslator(engine *I18n, locale string, format *LocaleFormat) *Translator {
	if engine == nil {
		panic("i18n: engine is not provided")
	}
	if format == nil {
		format = FormatEnUS()
	}
	return &Translator{
		engine: engine,
		locale: locale,
		format: format,
	}
}

// T translates key in the bound locale.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.engine.TIn(t.locale, key, placeholders...)
}

// Tn translates key with pluralization in the bound locale.
func (t *Translator) Tn(key string, count int, placeholders ...M) string {
	return t.engine.TnIn(t.locale, key, count, placeholders...)
}

// Value resolves a request in the bound locale, overriding any locale set on
// the request. Use it when the caller needs sequence values or a custom
// default rather than a plain string.
func (t *Translator) Value(req Request) Value {
	req.Locale = t.locale
	return t.engine.Resolve(req)
}

// Locale returns the locale the translator is bound to.
func (t *Translator) Locale() string {
	return t.locale
}

// Format returns the display format conventions.
func (t *Translator) Format() *LocaleFormat {
	return t.format
}

// FormatNumber formats a number per the bound locale conventions.
func (t *Translator) FormatNumber(value float64) string {
	return t.format.FormatNumber(value)
}

// FormatCurrency formats a monetary amount per the bound locale conventions.
func (t *Translator) FormatCurrency(value float64) string {
	return t.format.FormatCurrency(value)
}

// FormatPercent formats a ratio as a percentage per the bound locale
// conventions.
func (t *Translator) FormatPercent(value float64) string {
	return t.format.FormatPercent(value)
}

// FormatDate formats a date per the bound locale conventions.
func (t *Translator) FormatDate(date time.Time) string {
	return t.format.FormatDate(date)
}

// FormatTime formats a time of day per the bound locale conventions.
func (t *Translator) FormatTime(tm time.Time) string {
	return t.format.FormatTime(tm)
}

// FormatDateTime formats a timestamp per the bound locale conventions.
func (t *Translator) FormatDateTime(tm time.Time) string {
	return t.format.FormatDateTime(tm)
}
