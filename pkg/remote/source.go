package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"sync"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/i18n"
)

// Source fetches translation catalogs from an HTTP endpoint serving a JSON
// document of locale codes mapped to translation trees. Responses are
// revalidated with ETags: when the endpoint answers 304 Not Modified, Fetch
// returns the previously fetched catalogs without re-downloading.
type Source struct {
	url    string
	client *http.Client
	token  string

	mu     sync.Mutex
	etag   string
	cached map[string]map[string]any
}

// New creates a Source for the given catalog URL.
func New(url string, opts ...Option) (*Source, error) {
	if url == "" {
		return nil, ErrEmptyEndpoint
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	client := s.httpClient
	if client == nil {
		client = &http.Client{Timeout: s.timeout}
	}
	if s.oauth != nil {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		client = s.oauth.Client(ctx)
	}

	return &Source{url: url, client: client, token: s.token}, nil
}

// Fetch downloads the catalog document and returns the flattened catalogs
// keyed by locale. A 304 response serves the cached result of the previous
// download.
func (s *Source) Fetch(ctx context.Context) (map[string]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.etag != "" {
		req.Header.Set("If-None-Match", s.etag)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return s.snapshot(), nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("catalog request failed: status=%d body=%s", resp.StatusCode, body))
	}

	var payload map[string]map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	catalogs := make(map[string]map[string]any, len(payload))
	for locale, tree := range payload {
		if locale == "" {
			return nil, fmt.Errorf("%w: empty locale code", ErrInvalidPayload)
		}
		catalogs[locale] = i18n.Flatten(tree)
	}

	s.etag = resp.Header.Get("ETag")
	s.cached = catalogs
	return s.snapshot(), nil
}

// Load fetches the catalogs and merges each into repo via AddLocale.
func (s *Source) Load(ctx context.Context, repo i18n.Repository) error {
	if repo == nil {
		return i18n.ErrNilRepository
	}

	catalogs, err := s.Fetch(ctx)
	if err != nil {
		return err
	}

	for _, locale := range slices.Sorted(maps.Keys(catalogs)) {
		if err := repo.AddLocale(locale, catalogs[locale]); err != nil {
			return fmt.Errorf("remote: applying %q: %w", locale, err)
		}
	}
	return nil
}

// snapshot copies the cache so callers cannot mutate it. Called with mu held.
func (s *Source) snapshot() map[string]map[string]any {
	out := make(map[string]map[string]any, len(s.cached))
	for locale, flat := range s.cached {
		out[locale] = maps.Clone(flat)
	}
	return out
}
