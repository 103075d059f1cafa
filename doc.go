// Package i18n resolves translation keys against a pluggable locale
// repository, with regional fallback, placeholder substitution, and
// count-based pluralization for Go applications.
//
// Resolution never fails: a missing key degrades through the locale's
// regional parent and the fallback locale down to a literal default, and
// every degradation can emit a suppressible diagnostic. The engine is
// immutable after construction and safe for concurrent use; all mutable
// state lives behind the Repository interface.
//
// # Basic Usage
//
// Create a repository with translations, wrap it in an engine, and
// translate:
//
//	repo, err := i18n.NewMemoryRepository(
//		i18n.WithActiveLocale("en"),
//		i18n.WithFallbackLocale("en"),
//		i18n.WithTranslations("en", map[string]any{
//			"greeting": "Hello {name}",
//			"nav": map[string]any{
//				"home": "Home",
//			},
//		}),
//		i18n.WithTranslations("de", map[string]any{
//			"greeting": "Hallo {name}",
//		}),
//	)
//
//	engine, err := i18n.New(repo)
//
//	engine.T("greeting", i18n.M{"name": "Ada"})       // "Hello Ada"
//	engine.TIn("de", "greeting", i18n.M{"name": "Ada"}) // "Hallo Ada"
//	engine.T("nav.home")                               // "Home"
//
// Nested maps are flattened into dot-separated keys at load time, so lookups
// stay O(1) regardless of catalog shape.
//
// # Locale Fallback
//
// A lookup walks the chain exact locale, regional parent, fallback locale,
// literal default. Requesting "de-CH" finds "de" entries; requesting a locale
// with no catalog at all falls back to the default text:
//
//	engine.TIn("de-CH", "greeting", i18n.M{"name": "Ada"}) // "Hallo Ada"
//	engine.TIn("xx", "missing.key")                        // "missing.key"
//
// # Pluralization
//
// Plural variants live either in a ":::"-separated string or in a sequence,
// and Tn picks the variant for the count using gettext-derived rules per
// language. The count is also available as the {count} placeholder:
//
//	repo, _ := i18n.NewMemoryRepository(
//		i18n.WithTranslations("en", map[string]any{
//			"apples": "{count} apple:::{count} apples",
//		}),
//		i18n.WithTranslations("pl", map[string]any{
//			"apples": []string{"{count} jabłko", "{count} jabłka", "{count} jabłek"},
//		}),
//	)
//
//	engine.Tn("apples", 1)        // "1 apple"
//	engine.Tn("apples", 5)        // "5 apples"
//	engine.TnIn("pl", "apples", 2) // "2 jabłka"
//
// # File-Based Catalogs
//
// Load catalogs from JSON or YAML files in an fs.FS, typically an embed.FS:
//
//	//go:embed locales
//	var localesFS embed.FS
//
//	subFS, _ := fs.Sub(localesFS, "locales")
//	err := i18n.LoadDir(ctx, subFS, repo)
//
// File convention: {locale}.json at the root, or {locale}/{anything}.yaml
// for split catalogs.
//
// # Translator
//
// The Translator type fixes the locale and display format for a request or
// session:
//
//	t := i18n.NewTranslator(engine, "de", i18n.FormatDeDE())
//
//	title := t.T("page.title")
//	price := t.FormatCurrency(19.99) // "19,99 €"
//
// # Missing Translations
//
// A NotFoundHandler runs on its own goroutine whenever a key misses every
// locale tried, and may supply a translation that is written back to the
// repository for the next lookup. The triggering call is never delayed or
// altered; it returns the fallback result immediately.
//
// # Diagnostics
//
// Unresolved placeholders, missing plural variants, and empty locales emit
// warnings through the configured slog.Logger. Warnings are advisory, never
// fatal, and WithWarnings(false) silences them.
//
// # Thread Safety
//
// The engine holds no mutable state. MemoryRepository serves reads from an
// atomically swapped snapshot, so lookups never block behind mutations.
package i18n
