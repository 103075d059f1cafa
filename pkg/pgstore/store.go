package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrymomot/i18n"
)

const (
	settingActive   = "active_locale"
	settingFallback = "fallback_locale"
)

const (
	registerLocaleSQL = `INSERT INTO i18n_locales (locale) VALUES ($1) ON CONFLICT (locale) DO NOTHING`
	deleteLocaleSQL   = `DELETE FROM i18n_locales WHERE locale = $1`

	upsertTranslationSQL = `INSERT INTO i18n_translations (locale, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (locale, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteTranslationsSQL = `DELETE FROM i18n_translations WHERE locale = $1`

	upsertSettingSQL = `INSERT INTO i18n_settings (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`

	selectLocalesSQL      = `SELECT locale FROM i18n_locales`
	selectTranslationsSQL = `SELECT locale, key, value FROM i18n_translations`
	selectSettingsSQL     = `SELECT name, value FROM i18n_settings`
)

// storeState is an immutable snapshot of the catalog mirror. Reads load the
// pointer and never block on the database.
type storeState struct {
	table    map[string]map[string]any
	active   string
	fallback string
}

// Store is a PostgreSQL-backed i18n.Repository. Translations live in the
// i18n_translations table with JSONB values, locale membership in
// i18n_locales, and the active/fallback selection in i18n_settings.
// Mutations write through in a transaction and then update a local mirror,
// so reads are served from memory.
type Store struct {
	db      *sql.DB
	pool    *pgxpool.Pool // set when Connect owns the pool
	timeout time.Duration

	mu    sync.Mutex
	state atomic.Pointer[storeState]
}

var _ i18n.Repository = (*Store)(nil)

// Option configures the store.
type Option func(*storeSettings)

type storeSettings struct {
	timeout time.Duration
	logger  *slog.Logger
}

func defaultStoreSettings() *storeSettings {
	return &storeSettings{
		timeout: 5 * time.Second,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger used for migration output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *storeSettings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOperationTimeout sets the deadline applied to write-through mutations.
// Default: 5 seconds
func WithOperationTimeout(d time.Duration) Option {
	return func(s *storeSettings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New wraps an existing pgx pool in a Store and performs the initial catalog
// load. The caller keeps ownership of the pool and is responsible for
// running Migrate beforehand.
func New(ctx context.Context, pool *pgxpool.Pool, opts ...Option) (*Store, error) {
	if pool == nil {
		return nil, ErrNilPool
	}

	s := defaultStoreSettings()
	for _, opt := range opts {
		opt(s)
	}

	return newStore(ctx, stdlib.OpenDBFromPool(pool), s, nil)
}

// NewWithDB wraps an existing database/sql handle in a Store. The schema
// must already exist.
func NewWithDB(ctx context.Context, db *sql.DB, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	s := defaultStoreSettings()
	for _, opt := range opts {
		opt(s)
	}

	return newStore(ctx, db, s, nil)
}

func newStore(ctx context.Context, db *sql.DB, s *storeSettings, pool *pgxpool.Pool) (*Store, error) {
	store := &Store{
		db:      db,
		pool:    pool,
		timeout: s.timeout,
	}

	if err := store.Reload(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ActiveLocale returns the mirrored active locale.
func (s *Store) ActiveLocale() string {
	return s.state.Load().active
}

// FallbackLocale returns the mirrored fallback locale.
func (s *Store) FallbackLocale() string {
	return s.state.Load().fallback
}

// Table returns the mirrored translation table. The snapshot is immutable;
// callers must not modify it.
func (s *Store) Table() map[string]map[string]any {
	return s.state.Load().table
}

// SetLocale writes the active locale to the settings table and the mirror.
func (s *Store) SetLocale(locale string) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}
	return s.setSetting(settingActive, locale, func(next *storeState) {
		next.active = locale
	})
}

// SetFallbackLocale writes the fallback locale to the settings table and the
// mirror.
func (s *Store) SetFallbackLocale(locale string) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}
	return s.setSetting(settingFallback, locale, func(next *storeState) {
		next.fallback = locale
	})
}

func (s *Store) setSetting(name, value string, apply func(*storeState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.opContext()
	defer cancel()

	if _, err := s.db.ExecContext(ctx, upsertSettingSQL, name, value); err != nil {
		return fmt.Errorf("pgstore: storing %s: %w", name, err)
	}

	next := s.cloneState()
	apply(next)
	s.state.Store(next)
	return nil
}

// AddLocale flattens tree and upserts the keys into the locale. An empty
// tree still registers the locale.
func (s *Store) AddLocale(locale string, tree map[string]any) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}

	flat := i18n.Flatten(tree)

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.opContext()
	defer cancel()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, registerLocaleSQL, locale); err != nil {
			return fmt.Errorf("pgstore: registering %q: %w", locale, err)
		}
		return upsertFlat(ctx, tx, locale, flat)
	})
	if err != nil {
		return err
	}

	next := s.cloneState()
	entry := make(map[string]any, len(next.table[locale])+len(flat))
	maps.Copy(entry, next.table[locale])
	maps.Copy(entry, flat)
	next.table[locale] = entry
	s.state.Store(next)
	return nil
}

// ReplaceLocale flattens tree and replaces the locale's rows outright.
func (s *Store) ReplaceLocale(locale string, tree map[string]any) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}

	flat := i18n.Flatten(tree)

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.opContext()
	defer cancel()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, registerLocaleSQL, locale); err != nil {
			return fmt.Errorf("pgstore: registering %q: %w", locale, err)
		}
		if _, err := tx.ExecContext(ctx, deleteTranslationsSQL, locale); err != nil {
			return fmt.Errorf("pgstore: clearing %q: %w", locale, err)
		}
		return upsertFlat(ctx, tx, locale, flat)
	})
	if err != nil {
		return err
	}

	next := s.cloneState()
	next.table[locale] = flat
	s.state.Store(next)
	return nil
}

// RemoveLocale deletes the locale's rows. When the removed locale is the
// active one, the stored selection is cleared as well.
func (s *Store) RemoveLocale(locale string) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.opContext()
	defer cancel()

	clearActive := s.state.Load().active == locale

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteLocaleSQL, locale); err != nil {
			return fmt.Errorf("pgstore: unregistering %q: %w", locale, err)
		}
		if _, err := tx.ExecContext(ctx, deleteTranslationsSQL, locale); err != nil {
			return fmt.Errorf("pgstore: removing %q: %w", locale, err)
		}
		if clearActive {
			if _, err := tx.ExecContext(ctx, upsertSettingSQL, settingActive, ""); err != nil {
				return fmt.Errorf("pgstore: clearing active locale: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	next := s.cloneState()
	delete(next.table, locale)
	if clearActive {
		next.active = ""
	}
	s.state.Store(next)
	return nil
}

// Reload rebuilds the local mirror from the database.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.loadLocales(ctx)
	if err != nil {
		return err
	}
	if err := s.loadTranslations(ctx, table); err != nil {
		return err
	}
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return err
	}

	// An absent setting means the selection was never made and defaults to
	// "en". A present-but-empty active value is a cleared selection.
	active, ok := settings[settingActive]
	if !ok {
		active = "en"
	}
	fallback, ok := settings[settingFallback]
	if !ok {
		fallback = "en"
	}

	s.state.Store(&storeState{table: table, active: active, fallback: fallback})
	return nil
}

// Close releases the pool when Connect created it. Stores built around a
// caller-owned pool or handle close nothing.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) loadLocales(ctx context.Context) (map[string]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, selectLocalesSQL)
	if err != nil {
		return nil, fmt.Errorf("pgstore: listing locales: %w", err)
	}
	defer rows.Close()

	table := map[string]map[string]any{}
	for rows.Next() {
		var locale string
		if err := rows.Scan(&locale); err != nil {
			return nil, fmt.Errorf("pgstore: scanning locale: %w", err)
		}
		table[locale] = map[string]any{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: listing locales: %w", err)
	}
	return table, nil
}

func (s *Store) loadTranslations(ctx context.Context, table map[string]map[string]any) error {
	rows, err := s.db.QueryContext(ctx, selectTranslationsSQL)
	if err != nil {
		return fmt.Errorf("pgstore: loading translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			locale, key string
			raw         []byte
		)
		if err := rows.Scan(&locale, &key, &raw); err != nil {
			return fmt.Errorf("pgstore: scanning translation: %w", err)
		}

		value, err := decodeValue(raw)
		if err != nil {
			return fmt.Errorf("pgstore: decoding %s/%s: %w", locale, key, err)
		}

		entry, ok := table[locale]
		if !ok {
			entry = map[string]any{}
			table[locale] = entry
		}
		entry[key] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("pgstore: loading translations: %w", err)
	}
	return nil
}

func (s *Store) loadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, selectSettingsSQL)
	if err != nil {
		return nil, fmt.Errorf("pgstore: loading settings: %w", err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("pgstore: scanning setting: %w", err)
		}
		settings[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: loading settings: %w", err)
	}
	return settings, nil
}

// withTx executes fn within a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgstore: beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgstore: committing transaction: %w", err)
	}
	return nil
}

// upsertFlat writes a flattened tree in sorted key order so writes are
// deterministic.
func upsertFlat(ctx context.Context, tx *sql.Tx, locale string, flat map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		encoded, err := json.Marshal(flat[key])
		if err != nil {
			return fmt.Errorf("pgstore: encoding %s/%s: %w", locale, key, err)
		}
		if _, err := tx.ExecContext(ctx, upsertTranslationSQL, locale, key, encoded); err != nil {
			return fmt.Errorf("pgstore: storing %s/%s: %w", locale, key, err)
		}
	}
	return nil
}

// cloneState copies the current state with a fresh top-level table map.
// Locale entries are shared between snapshots and never mutated in place.
func (s *Store) cloneState() *storeState {
	cur := s.state.Load()
	next := &storeState{
		table:    make(map[string]map[string]any, len(cur.table)),
		active:   cur.active,
		fallback: cur.fallback,
	}
	maps.Copy(next.table, cur.table)
	return next
}

func (s *Store) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// decodeValue restores a JSONB value into the string or []string form the
// repository contract expects.
func decodeValue(raw []byte) (any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var value string
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, err
	}
	return value, nil
}
