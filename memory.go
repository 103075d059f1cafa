package i18n

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"
)

// repoState is an immutable snapshot of the repository contents. Mutations
// build a new state and swap the pointer, so reads never block and never
// observe partial writes.
type repoState struct {
	table    map[string]map[string]any
	active   string
	fallback string
}

// MemoryRepository is an in-memory Repository. Reads are lock-free snapshot
// loads; mutations are serialized by a mutex and publish a fresh snapshot.
type MemoryRepository struct {
	mu     sync.Mutex
	state  atomic.Pointer[repoState]
	logger *slog.Logger
}

// MemoryOption configures a MemoryRepository during construction.
type MemoryOption func(*MemoryRepository) error

// NewMemoryRepository creates an in-memory repository, optionally seeded with
// translations and locale selections. Both the active and the fallback locale
// default to "en".
func NewMemoryRepository(opts ...MemoryOption) (*MemoryRepository, error) {
	r := &MemoryRepository{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	r.state.Store(&repoState{
		table:    map[string]map[string]any{},
		active:   "en",
		fallback: "en",
	})

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return r, nil
}

// WithMemoryLogger sets the logger used for flattening diagnostics.
func WithMemoryLogger(logger *slog.Logger) MemoryOption {
	return func(r *MemoryRepository) error {
		if logger != nil {
			r.logger = logger
		}
		return nil
	}
}

// WithTranslations seeds the repository with a locale's translation tree.
// May be given multiple times; repeated locales merge.
func WithTranslations(locale string, tree map[string]any) MemoryOption {
	return func(r *MemoryRepository) error {
		return r.AddLocale(locale, tree)
	}
}

// WithActiveLocale selects the active locale at construction.
func WithActiveLocale(locale string) MemoryOption {
	return func(r *MemoryRepository) error {
		return r.SetLocale(locale)
	}
}

// WithFallbackLocale configures the fallback locale at construction.
func WithFallbackLocale(locale string) MemoryOption {
	return func(r *MemoryRepository) error {
		return r.SetFallbackLocale(locale)
	}
}

// ActiveLocale returns the currently selected locale, or "".
func (r *MemoryRepository) ActiveLocale() string {
	return r.state.Load().active
}

// FallbackLocale returns the configured fallback locale, or "".
func (r *MemoryRepository) FallbackLocale() string {
	return r.state.Load().fallback
}

// Table returns the current flat table snapshot. Callers must not mutate it.
func (r *MemoryRepository) Table() map[string]map[string]any {
	return r.state.Load().table
}

// SetLocale selects the active locale.
func (r *MemoryRepository) SetLocale(locale string) error {
	if locale == "" {
		return ErrEmptyLocale
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.cloneState()
	next.active = locale
	r.state.Store(next)
	return nil
}

// SetFallbackLocale configures the last-resort locale.
func (r *MemoryRepository) SetFallbackLocale(locale string) error {
	if locale == "" {
		return ErrEmptyLocale
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.cloneState()
	next.fallback = locale
	r.state.Store(next)
	return nil
}

// AddLocale flattens tree and merges it into the locale's entry. An empty
// tree still creates the entry, so the locale becomes known.
func (r *MemoryRepository) AddLocale(locale string, tree map[string]any) error {
	if locale == "" {
		return ErrEmptyLocale
	}

	flat := flattenTree(tree, "", r.warnf)

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.cloneState()
	entry := make(map[string]any, len(next.table[locale])+len(flat))
	maps.Copy(entry, next.table[locale])
	maps.Copy(entry, flat)
	next.table[locale] = entry
	r.state.Store(next)
	return nil
}

// ReplaceLocale flattens tree and replaces the locale's entry outright.
func (r *MemoryRepository) ReplaceLocale(locale string, tree map[string]any) error {
	if locale == "" {
		return ErrEmptyLocale
	}

	flat := flattenTree(tree, "", r.warnf)

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.cloneState()
	next.table[locale] = flat
	r.state.Store(next)
	return nil
}

// RemoveLocale deletes the locale's entry and clears the active locale when
// it matches.
func (r *MemoryRepository) RemoveLocale(locale string) error {
	if locale == "" {
		return ErrEmptyLocale
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.state.Load()
	if _, ok := cur.table[locale]; !ok && cur.active != locale {
		return nil
	}

	next := r.cloneState()
	delete(next.table, locale)
	if next.active == locale {
		next.active = ""
	}
	r.state.Store(next)
	return nil
}

// cloneState copies the current state with a fresh top-level table map.
// Locale entries are shared between snapshots and never mutated in place;
// mutations that touch an entry build a replacement first.
func (r *MemoryRepository) cloneState() *repoState {
	cur := r.state.Load()
	next := &repoState{
		table:    make(map[string]map[string]any, len(cur.table)),
		active:   cur.active,
		fallback: cur.fallback,
	}
	maps.Copy(next.table, cur.table)
	return next
}

func (r *MemoryRepository) warnf(format string, args ...any) {
	r.logger.Warn(fmt.Sprintf(format, args...))
}
