package middlewares

import (
	"net/http"

	"github.com/dmitrymomot/i18n"
)

// Source extracts a locale candidate from the request.
// Returns the value and true if found, or ("", false) if not present.
type Source func(r *http.Request) (string, bool)

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) Source {
	return func(r *http.Request) (string, bool) {
		v := r.URL.Query().Get(name)
		if v == "" {
			return "", false
		}
		return v, true
	}
}

// FromCookie returns a source that reads from a cookie.
func FromCookie(name string) Source {
	return func(r *http.Request) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) Source {
	return func(r *http.Request) (string, bool) {
		v := r.Header.Get(name)
		if v == "" {
			return "", false
		}
		return v, true
	}
}

// FromAcceptLanguage returns a source that parses the Accept-Language header
// and negotiates against the given locales.
func FromAcceptLanguage(available []string) Source {
	return func(r *http.Request) (string, bool) {
		header := r.Header.Get("Accept-Language")
		if header == "" {
			return "", false
		}
		locale := i18n.NegotiateLocale(available, i18n.ParseAcceptLanguage(header)...)
		return locale, locale != ""
	}
}
