package i18n

// Repository holds the translation state the engine resolves against: a flat
// table per locale plus the active and fallback locale selections. The engine
// only reads this state and issues mutation requests; implementations own the
// serialization of mutations and the visibility of new state to subsequent
// reads.
//
// Reads must be non-blocking snapshots. Mutations are atomic and independent;
// they carry no context because the engine issues them fire-and-forget (see
// NotFoundHandler), so implementations that perform I/O apply their own
// deadlines.
type Repository interface {
	// ActiveLocale returns the currently selected locale, or "" when none is
	// selected.
	ActiveLocale() string

	// FallbackLocale returns the configured last-resort locale, or "" when
	// none is configured.
	FallbackLocale() string

	// Table returns the flat translation table: locale code to dotted key to
	// value, where values are string or []string. The returned map is a
	// snapshot and must not be mutated.
	Table() map[string]map[string]any

	// SetLocale selects the active locale.
	SetLocale(locale string) error

	// SetFallbackLocale configures the last-resort locale.
	SetFallbackLocale(locale string) error

	// AddLocale flattens tree and merges it into the locale's entry, creating
	// the entry when absent.
	AddLocale(locale string, tree map[string]any) error

	// ReplaceLocale flattens tree and replaces the locale's entry outright.
	ReplaceLocale(locale string, tree map[string]any) error

	// RemoveLocale deletes the locale's entry and clears the active locale
	// when it matches. Removing an unknown locale is a no-op.
	RemoveLocale(locale string) error
}
