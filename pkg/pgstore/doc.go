// Package pgstore provides a PostgreSQL-backed repository for translation
// catalogs.
//
// Translations live in the i18n_translations table with JSONB values (plural
// variant sequences survive the round trip), locale membership in
// i18n_locales, and the active/fallback selection in i18n_settings. The
// schema ships as embedded goose migrations under a dedicated
// i18n_schema_migrations history table, so it coexists with the host
// application's own migrations.
//
// Mutations write through in a transaction and then update an in-process
// mirror; reads never touch the database. Call Reload to pick up rows
// written by other instances.
//
// # Usage
//
//	cfg, err := pgstore.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	store, err := pgstore.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	engine, err := i18n.New(store)
//
// An existing pool can be wrapped instead; run the migrations first:
//
//	db := stdlib.OpenDBFromPool(pool)
//	if err := pgstore.Migrate(ctx, db, logger); err != nil {
//	    return err
//	}
//	store, err := pgstore.New(ctx, pool)
package pgstore
