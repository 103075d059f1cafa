package sentryreport

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/dmitrymomot/i18n"
)

// Option mutates the Sentry client options before the client is created.
type Option func(*sentry.ClientOptions)

// WithBeforeSend sets a hook that can inspect, modify, or drop events
// before they are sent.
func WithBeforeSend(fn func(*sentry.Event, *sentry.EventHint) *sentry.Event) Option {
	return func(o *sentry.ClientOptions) {
		o.BeforeSend = fn
	}
}

// WithSampleRate sets the event sample rate in (0, 1]. Defaults to 1.
func WithSampleRate(rate float64) Option {
	return func(o *sentry.ClientOptions) {
		if rate > 0 && rate <= 1 {
			o.SampleRate = rate
		}
	}
}

// Reporter captures missing translation keys as Sentry events. The reporter
// owns an isolated hub, so it never touches the global Sentry state of the
// host application.
type Reporter struct {
	hub     *sentry.Hub
	enabled bool
}

// New creates a Reporter. An empty DSN yields a disabled reporter whose
// methods are no-ops.
func New(cfg Config, opts ...Option) (*Reporter, error) {
	if cfg.DSN == "" {
		return &Reporter{}, nil
	}

	clientOpts := sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		Debug:       cfg.Debug,
	}
	for _, opt := range opts {
		opt(&clientOpts)
	}

	client, err := sentry.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInitFailed, err)
	}

	return &Reporter{
		hub:     sentry.NewHub(client, sentry.NewScope()),
		enabled: true,
	}, nil
}

// Enabled reports whether events are being captured.
func (r *Reporter) Enabled() bool {
	return r.enabled
}

// Report captures one missing-key event tagged with locale and key. Events
// for the same locale/key pair share a fingerprint, so they group into one
// Sentry issue.
func (r *Reporter) Report(locale, key, defaultValue string) {
	if !r.enabled {
		return
	}

	event := sentry.NewEvent()
	event.Level = sentry.LevelWarning
	event.Message = fmt.Sprintf("missing translation: %s/%s", locale, key)
	event.Tags["i18n.locale"] = locale
	event.Tags["i18n.key"] = key
	if defaultValue != "" {
		event.Extra["default"] = defaultValue
	}
	event.Fingerprint = []string{"i18n-missing-key", locale, key}

	r.hub.CaptureEvent(event)
}

// NotFoundHandler adapts the reporter to the engine's miss hook. It only
// records the miss and never produces a translation.
func (r *Reporter) NotFoundHandler() i18n.NotFoundHandler {
	return func(_ context.Context, locale, key, defaultValue string) (string, error) {
		r.Report(locale, key, defaultValue)
		return "", nil
	}
}

// Flush waits for buffered events to reach Sentry. Call it on shutdown.
func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.enabled {
		return true
	}
	return r.hub.Client().Flush(timeout)
}
