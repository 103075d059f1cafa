package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Default placeholder delimiters.
const (
	defaultIdentStart = "{"
	defaultIdentEnd   = "}"
)

// NotFoundHandler is invoked when a key misses every locale tried. It runs on
// its own goroutine; a non-empty result is posted back to the repository as an
// AddLocale mutation for the requested locale. It never influences the
// synchronous result of the resolution that triggered it, and there is no
// cancellation once it has been scheduled.
type NotFoundHandler func(ctx context.Context, locale, key, defaultValue string) (string, error)

// Scope controls how far KeyExists walks the fallback chain.
type Scope int

const (
	// ScopeFallback checks the exact locale, its regional parent, and the
	// fallback locale. This is the default.
	ScopeFallback Scope = iota
	// ScopeLocale checks the exact locale and its regional parent.
	ScopeLocale
	// ScopeStrict checks only the exact locale.
	ScopeStrict
)

// Request describes a single resolution call. Zero-value fields fall back to
// defaults: an empty Locale uses the repository's active locale, an empty
// Default falls back to Key, and a nil Count disables pluralization.
type Request struct {
	Locale       string
	Key          string
	Default      string
	Replacements M
	Count        *int
}

// I18n resolves translation keys against a Repository, handling locale
// fallback, placeholder substitution, and pluralization. It is immutable
// after creation and safe for concurrent use; all mutable state lives in the
// repository.
type I18n struct {
	repo Repository

	// Compiled placeholder pattern and its delimiter pair.
	placeholderRE *regexp.Regexp
	identStart    string
	identEnd      string

	// Per-instance plural rule overrides; the package table covers the rest.
	pluralRules map[string]pluralSpec

	notFound NotFoundHandler
	logger   *slog.Logger
	warnings bool
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates an I18n engine over the given repository. All configuration
// happens during construction.
func New(repo Repository, opts ...Option) (*I18n, error) {
	if repo == nil {
		return nil, ErrNilRepository
	}

	i := &I18n{
		repo:        repo,
		identStart:  defaultIdentStart,
		identEnd:    defaultIdentEnd,
		pluralRules: make(map[string]pluralSpec),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		warnings:    true,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	i.placeholderRE = regexp.MustCompile(
		regexp.QuoteMeta(i.identStart) + `\w+` + regexp.QuoteMeta(i.identEnd),
	)

	return i, nil
}

// WithWarnings toggles diagnostic notices for unresolved placeholders,
// missing variants, and missing locale context. Enabled by default.
func WithWarnings(enabled bool) Option {
	return func(i *I18n) error {
		i.warnings = enabled
		return nil
	}
}

// WithIdentifiers sets the placeholder delimiter pair, e.g. "%{" and "}".
// A placeholder is the pair enclosing one or more word characters.
func WithIdentifiers(start, end string) Option {
	return func(i *I18n) error {
		if start == "" || end == "" {
			return ErrEmptyIdentifiers
		}
		i.identStart = start
		i.identEnd = end
		return nil
	}
}

// WithNotFoundHandler registers the hook invoked when a key misses every
// locale tried.
func WithNotFoundHandler(h NotFoundHandler) Option {
	return func(i *I18n) error {
		i.notFound = h
		return nil
	}
}

// WithLogger sets the logger for diagnostic notices. Defaults to a discard
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *I18n) error {
		if logger != nil {
			i.logger = logger
		}
		return nil
	}
}

// WithPluralRule overrides the pluralization rule for a language code.
// forms declares how many variants the rule selects from.
func WithPluralRule(lang string, forms int, rule PluralRule) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLocale
		}
		if rule == nil {
			return ErrNilPluralRule
		}
		if forms < 1 {
			return ErrInvalidPluralForms
		}
		i.pluralRules[lang] = pluralSpec{index: rule, forms: forms}
		return nil
	}
}

// Resolve resolves a translation request through the fallback chain: exact
// locale, regional parent, not-found hook, fallback locale, literal default.
// It never fails; every miss degrades to a rendered default.
func (i *I18n) Resolve(req Request) Value {
	locale := req.Locale
	if locale == "" {
		locale = i.repo.ActiveLocale()
	}

	def := req.Default
	if def == "" {
		def = req.Key
	}

	if locale == "" {
		i.warn("no locale to resolve against", slog.String("key", req.Key))
		return stringValue(def)
	}

	table := i.repo.Table()

	if value, ok := lookup(table, locale, req.Key); ok {
		return i.render(locale, value, req.Replacements, req.Count)
	}

	if parent, ok := parentLocale(locale); ok {
		if value, found := lookup(table, parent, req.Key); found {
			return i.render(parent, value, req.Replacements, req.Count)
		}
	}

	if i.notFound != nil {
		go i.resolveNotFound(locale, req.Key, def)
	}

	fallback := i.repo.FallbackLocale()
	if _, ok := table[fallback]; !ok {
		return i.render(locale, def, req.Replacements, req.Count)
	}

	value, ok := lookup(table, fallback, req.Key)
	if !ok {
		return i.render(fallback, def, req.Replacements, req.Count)
	}

	// The value comes from the fallback locale, but pluralization still
	// follows the locale the caller asked for.
	return i.render(locale, value, req.Replacements, req.Count)
}

// T translates key in the repository's active locale.
func (i *I18n) T(key string, placeholders ...M) string {
	return i.Resolve(Request{Key: key, Replacements: mergeM(placeholders...)}).String()
}

// Tn translates key with pluralization in the active locale. The count is
// also exposed to the template as the "count" placeholder.
func (i *I18n) Tn(key string, count int, placeholders ...M) string {
	return i.Resolve(Request{
		Key:          key,
		Replacements: mergeCount(count, placeholders...),
		Count:        &count,
	}).String()
}

// TIn translates key in an explicit locale.
func (i *I18n) TIn(locale, key string, placeholders ...M) string {
	return i.Resolve(Request{
		Locale:       locale,
		Key:          key,
		Replacements: mergeM(placeholders...),
	}).String()
}

// TnIn translates key with pluralization in an explicit locale.
func (i *I18n) TnIn(locale, key string, count int, placeholders ...M) string {
	return i.Resolve(Request{
		Locale:       locale,
		Key:          key,
		Replacements: mergeCount(count, placeholders...),
		Count:        &count,
	}).String()
}

// KeyExists reports whether key is reachable without rendering it, walking
// the same fallback order as Resolve up to the given scope. The check runs
// against the repository's active locale.
func (i *I18n) KeyExists(key string, scope Scope) bool {
	locale := i.repo.ActiveLocale()
	table := i.repo.Table()

	if _, ok := lookup(table, locale, key); ok {
		return true
	}
	if scope == ScopeStrict {
		return false
	}

	if parent, ok := parentLocale(locale); ok {
		if _, found := lookup(table, parent, key); found {
			return true
		}
	}
	if scope == ScopeLocale {
		return false
	}

	_, ok := lookup(table, i.repo.FallbackLocale(), key)
	return ok
}

// LocaleExists reports whether the repository holds an entry for the locale.
func (i *I18n) LocaleExists(locale string) bool {
	_, ok := i.repo.Table()[locale]
	return ok
}

// Locales returns the locales present in the repository, sorted.
func (i *I18n) Locales() []string {
	return slices.Sorted(maps.Keys(i.repo.Table()))
}

// Repository returns the repository the engine resolves against.
func (i *I18n) Repository() Repository {
	return i.repo
}

// resolveNotFound runs the not-found hook and posts a non-empty result back
// to the repository. Fire-and-forget: last writer for a key wins, and the
// write is attempted even if the triggering call has long returned.
func (i *I18n) resolveNotFound(locale, key, def string) {
	value, err := i.notFound(context.Background(), locale, key, def)
	if err != nil {
		i.warn("translation not-found handler failed",
			slog.String("locale", locale),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return
	}
	if value == "" {
		return
	}
	if err := i.repo.AddLocale(locale, map[string]any{key: value}); err != nil {
		i.warn("failed to store resolved translation",
			slog.String("locale", locale),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// warn emits a diagnostic notice unless warnings are disabled. Diagnostics
// are advisory and never change control flow.
func (i *I18n) warn(msg string, attrs ...any) {
	if !i.warnings {
		return
	}
	i.logger.Warn(msg, attrs...)
}

// lookup reads a key from one locale's table entry.
func lookup(table map[string]map[string]any, locale, key string) (any, bool) {
	entry, ok := table[locale]
	if !ok {
		return nil, false
	}
	value, ok := entry[key]
	return value, ok
}

// parentLocale strips the region suffix: "de-CH" becomes "de". The second
// return is false when the locale has no region part.
func parentLocale(locale string) (string, bool) {
	parent, _, found := strings.Cut(locale, "-")
	if !found || parent == "" {
		return "", false
	}
	return parent, true
}

func mergeM(placeholders ...M) M {
	if len(placeholders) == 0 {
		return nil
	}
	if len(placeholders) == 1 {
		return placeholders[0]
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return merged
}

func mergeCount(count int, placeholders ...M) M {
	merged := M{"count": count}
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return merged
}
