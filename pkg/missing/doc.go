// Package missing turns translation misses into durable work items backed
// by River and Postgres.
//
// The flow has two halves. Request-serving processes report misses through
// a Queue, usually wired straight into the engine:
//
//	queue, err := missing.NewQueue(pool)
//	if err != nil {
//	    return err
//	}
//	engine, err := i18n.New(repo, i18n.WithNotFoundHandler(queue.NotFoundHandler()))
//
// A worker process runs a Manager that resolves each report and posts the
// result back to the repository:
//
//	manager, err := missing.NewManager(pool, repo, func(ctx context.Context, locale, key, def string) (string, error) {
//	    return translateService.Translate(ctx, locale, def)
//	})
//	if err != nil {
//	    return err
//	}
//	if err := manager.Start(ctx); err != nil {
//	    return err
//	}
//	defer manager.Stop(context.Background())
//
// Reports are unique by arguments, so a hot key missed on every request
// enqueues a single job. River's migrations must already be applied to the
// database; see the River documentation.
package missing
