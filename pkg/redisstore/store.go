package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/i18n"
)

// storeState is an immutable snapshot of the catalog mirror. Reads load the
// pointer and never block on Redis.
type storeState struct {
	table    map[string]map[string]any
	active   string
	fallback string
}

// Store is a Redis-backed i18n.Repository. Translations live in one hash per
// locale, locale membership in a set, and the active/fallback selection in a
// meta hash. Mutations write through to Redis first and then update a local
// mirror, so reads are served from memory.
type Store struct {
	client     redis.UniversalClient
	ownsClient bool

	prefix  string
	timeout time.Duration
	logger  *slog.Logger
	notify  bool

	mu    sync.Mutex
	state atomic.Pointer[storeState]
	group singleflight.Group

	cancel context.CancelFunc
	done   sync.WaitGroup
	pubsub *redis.PubSub
}

var _ i18n.Repository = (*Store)(nil)

// New wraps an existing client in a Store and performs the initial catalog
// load. The caller keeps ownership of the client.
func New(ctx context.Context, client redis.UniversalClient, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	return newStore(ctx, client, s, false)
}

func newStore(ctx context.Context, client redis.UniversalClient, s *settings, ownsClient bool) (*Store, error) {
	store := &Store{
		client:     client,
		ownsClient: ownsClient,
		prefix:     s.prefix,
		timeout:    s.timeout,
		logger:     s.logger,
		notify:     s.notify,
	}

	if err := store.Reload(ctx); err != nil {
		return nil, err
	}

	// Background work outlives the constructor context.
	bctx, cancel := context.WithCancel(context.Background())
	store.cancel = cancel

	if s.refreshEvery > 0 {
		store.done.Add(1)
		go store.refreshLoop(bctx, s.refreshEvery)
	}
	if s.notify {
		store.pubsub = client.Subscribe(bctx, store.eventsKey())
		store.done.Add(1)
		go store.listenLoop(bctx)
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

// SetLocale writes the active locale to the meta hash and the mirror.
func (s *Store) SetLocale(locale string) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.opContext()
	defer cancel()

	if err := s.client.HSet(ctx, s.metaKey(), "active", locale).Err(); err != nil {
		return fmt.Errorf("redisstore: storing active locale: %w", err)
	}

	next := s.cloneState()
	next.active = locale
	s.state.Store(next)

	s.announce(ctx)
	return nil
}

// SetFallbackLocale writes the fallback locale to the meta hash and the mirror.
func (s *Store) SetFallbackLocale(locale string) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.opContext()
	defer cancel()

	if err := s.client.HSet(ctx, s.metaKey(), "fallback", locale).Err(); err != nil {
		return fmt.Errorf("redisstore: storing fallback locale: %w", err)
	}

	next := s.cloneState()
	next.fallback = locale
	s.state.Store(next)

	s.announce(ctx)
	return nil
}

// AddLocale flattens tree and merges it into the locale's hash. An empty
// tree still registers the locale in the index set.
func (s *Store) AddLocale(locale string, tree map[string]any) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}

	flat := i18n.Flatten(tree)
	args, err := encodeFields(flat)
	if err != nil {
		return fmt.Errorf("redisstore: encoding %q: %w", locale, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.opContext()
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, s.indexKey(), locale)
	if len(args) > 0 {
		pipe.HSet(ctx, s.localeKey(locale), args)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redisstore: storing %q: %w", locale, err)
	}

	next := s.cloneState()
	entry := make(map[string]any, len(next.table[locale])+len(flat))
	maps.Copy(entry, next.table[locale])
	maps.Copy(entry, flat)
	next.table[locale] = entry
	s.state.Store(next)

	s.announce(ctx)
	return nil
}

// ReplaceLocale flattens tree and replaces the locale's hash outright.
func (s *Store) ReplaceLocale(locale string, tree map[string]any) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}

	flat := i18n.Flatten(tree)
	args, err := encodeFields(flat)
	if err != nil {
		return fmt.Errorf("redisstore: encoding %q: %w", locale, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.opContext()
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, s.indexKey(), locale)
	pipe.Del(ctx, s.localeKey(locale))
	if len(args) > 0 {
		pipe.HSet(ctx, s.localeKey(locale), args)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redisstore: storing %q: %w", locale, err)
	}

	next := s.cloneState()
	next.table[locale] = flat
	s.state.Store(next)

	s.announce(ctx)
	return nil
}

// RemoveLocale deletes the locale's hash and index entry. When the removed
// locale is the active one, the active selection is cleared in the meta hash
// as well, so other instances observe the same state after a reload.
func (s *Store) RemoveLocale(locale string) error {
	if locale == "" {
		return i18n.ErrEmptyLocale
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.opContext()
	defer cancel()

	clearActive := s.state.Load().active == locale

	pipe := s.client.TxPipeline()
	pipe.SRem(ctx, s.indexKey(), locale)
	pipe.Del(ctx, s.localeKey(locale))
	if clearActive {
		pipe.HSet(ctx, s.metaKey(), "active", "")
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redisstore: removing %q: %w", locale, err)
	}

	next := s.cloneState()
	delete(next.table, locale)
	if clearActive {
		next.active = ""
	}
	s.state.Store(next)

	s.announce(ctx)
	return nil
}

// Reload rebuilds the local mirror from Redis. Concurrent calls share a
// single round of reads.
func (s *Store) Reload(ctx context.Context) error {
	_, err, _ := s.group.Do("reload", func() (any, error) {
		return nil, s.reload(ctx)
	})
	return err
}

// Close stops the background refresh and pub/sub loops. The client is closed
// only when Open created it.
func (s *Store) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.pubsub != nil {
		_ = s.pubsub.Close()
	}
	s.done.Wait()

	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}

func (s *Store) reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	locales, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("redisstore: listing locales: %w", err)
	}

	meta, err := s.client.HGetAll(ctx, s.metaKey()).Result()
	if err != nil {
		return fmt.Errorf("redisstore: reading meta: %w", err)
	}

	table := make(map[string]map[string]any, len(locales))
	for _, locale := range slices.Sorted(slices.Values(locales)) {
		raw, err := s.client.HGetAll(ctx, s.localeKey(locale)).Result()
		if err != nil {
			return fmt.Errorf("redisstore: reading %q: %w", locale, err)
		}

		entry := make(map[string]any, len(raw))
		for key, encoded := range raw {
			value, err := decodeValue(encoded)
			if err != nil {
				return fmt.Errorf("redisstore: decoding %s/%s: %w", locale, key, err)
			}
			entry[key] = value
		}
		table[locale] = entry
	}

	// An absent meta field means the selection was never made and defaults
	// to "en". A present-but-empty active field is a cleared selection and
	// stays empty.
	active, ok := meta["active"]
	if !ok {
		active = "en"
	}
	fallback, ok := meta["fallback"]
	if !ok {
		fallback = "en"
	}

	s.state.Store(&storeState{table: table, active: active, fallback: fallback})
	return nil
}

func (s *Store) refreshLoop(ctx context.Context, every time.Duration) {
	defer s.done.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Store) listenLoop(ctx context.Context) {
	defer s.done.Done()

	ch := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			s.refresh(ctx)
		}
	}
}

func (s *Store) refresh(ctx context.Context) {
	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.Reload(rctx); err != nil {
		s.logger.WarnContext(ctx, "catalog refresh failed", "error", err)
	}
}

// announce publishes an invalidation event for other instances. Failures are
// logged and never surface to the mutation caller.
func (s *Store) announce(ctx context.Context) {
	if !s.notify {
		return
	}
	if err := s.client.Publish(ctx, s.eventsKey(), "reload").Err(); err != nil {
		s.logger.WarnContext(ctx, "failed to publish invalidation", "error", err)
	}
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

func (s *Store) localeKey(locale string) string { return s.prefix + ":locale:" + locale }
func (s *Store) metaKey() string                { return s.prefix + ":meta" }
func (s *Store) indexKey() string               { return s.prefix + ":locales" }
func (s *Store) eventsKey() string              { return s.prefix + ":events" }

// encodeFields renders a flattened tree as alternating field/value pairs
// with JSON-encoded values, sorted by field for deterministic writes.
func encodeFields(flat map[string]any) ([]string, error) {
	args := make([]string, 0, len(flat)*2)
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		encoded, err := json.Marshal(flat[key])
		if err != nil {
			return nil, err
		}
		args = append(args, key, string(encoded))
	}
	return args, nil
}

// decodeValue restores a hash value into the string or []string form the
// repository contract expects.
func decodeValue(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var value string
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}
	return value, nil
}
