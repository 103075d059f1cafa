// Package redisstore provides a Redis-backed repository for translation
// catalogs shared across application instances.
//
// Translations live in one hash per locale under "{prefix}:locale:{code}",
// locale membership in the "{prefix}:locales" set, and the active/fallback
// selection in the "{prefix}:meta" hash. Values are JSON-encoded so plural
// variant sequences survive the round trip.
//
// Mutations write through to Redis first and then update an in-process
// mirror; reads never touch Redis. Other instances pick up changes through
// periodic refresh, pub/sub invalidation, or an explicit Reload.
//
// # Usage
//
//	cfg, err := redisstore.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	store, err := redisstore.Open(ctx, cfg.URL, cfg.Options()...)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	engine, err := i18n.New(store)
//
// An existing client can be wrapped instead:
//
//	store, err := redisstore.New(ctx, client, redisstore.WithNotifications())
package redisstore
