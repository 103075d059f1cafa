// Package refresh keeps a translation repository in sync with an external
// catalog source on a schedule.
//
// A Source is anything that returns catalogs keyed by locale; the s3loader
// and remote packages both qualify. Each run replaces every fetched locale
// wholesale, so keys removed from a catalog disappear; locales the fetch
// does not mention are left untouched.
//
//	source, _ := remote.New(cfg.CatalogURL)
//	refresher, err := refresh.New(repo, source,
//	    refresh.WithSchedule("*/15 * * * *"),
//	    refresh.WithRunOnStart(),
//	    refresh.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := refresher.Start(ctx); err != nil {
//	    return err
//	}
//	defer refresher.Stop(context.Background())
//
// Sync runs one fetch-and-replace cycle on demand, outside the schedule.
package refresh
