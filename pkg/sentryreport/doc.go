// Package sentryreport surfaces missing translation keys as Sentry issues.
//
// Misses for the same locale and key share a fingerprint, so a hot missing
// key becomes one issue with an event count instead of a flood.
//
//	cfg, err := sentryreport.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	reporter, err := sentryreport.New(cfg)
//	if err != nil {
//	    return err
//	}
//	defer reporter.Flush(2 * time.Second)
//
//	engine, err := i18n.New(repo,
//	    i18n.WithNotFoundHandler(reporter.NotFoundHandler()),
//	)
//
// An empty SENTRY_DSN yields a disabled reporter whose methods are no-ops,
// so the wiring stays identical between development and production.
package sentryreport
