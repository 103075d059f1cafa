// Package middlewares provides net/http middleware for locale negotiation.
//
// # Language
//
// Language middleware resolves the request locale, binds a Translator to it,
// and stores both in the request context. By default it checks the "lang"
// query parameter, then the "lang" cookie, then negotiates the
// Accept-Language header against the locales registered in the engine.
//
//	engine, _ := i18n.New(repo)
//	handler := middlewares.Language(engine)(mux)
//
// Handlers read the resolved values back from the context:
//
//	func hello(w http.ResponseWriter, r *http.Request) {
//	    tr, _ := middlewares.TranslatorFromContext(r.Context())
//	    fmt.Fprint(w, tr.T("greeting", i18n.M{"name": "Ada"}))
//	}
//
// # Custom Sources
//
// The source chain is replaceable. Sources run in order and the first
// non-empty value wins:
//
//	middlewares.Language(engine,
//	    middlewares.WithLanguageSources(
//	        middlewares.FromQuery("locale"),
//	        middlewares.FromHeader("X-Locale"),
//	        middlewares.FromAcceptLanguage([]string{"en", "de", "pl"}),
//	    ),
//	)
//
// # Number and Date Formats
//
// The Translator is bound to a LocaleFormat. Formats come from the
// predefined table unless overridden per locale:
//
//	middlewares.Language(engine,
//	    middlewares.WithLanguageFormats(map[string]*i18n.LocaleFormat{
//	        "de-CH": i18n.NewLocaleFormat(
//	            i18n.WithThousandSeparator("'"),
//	            i18n.WithCurrencySymbol("CHF"),
//	            i18n.WithCurrencyGap(),
//	        ),
//	    }),
//	)
package middlewares
