package remote

import (
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// Option configures a Source.
type Option func(*settings)

type settings struct {
	httpClient *http.Client
	timeout    time.Duration
	token      string
	oauth      *clientcredentials.Config
}

func defaultSettings() settings {
	return settings{timeout: 10 * time.Second}
}

// WithHTTPClient sets a custom HTTP client for catalog requests. When
// combined with WithOAuth2, the client becomes the transport the token
// source uses.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTimeout caps each catalog request. Default is 10s. Ignored when a
// custom HTTP client is provided.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithToken authenticates catalog requests with a static bearer token.
func WithToken(token string) Option {
	return func(s *settings) {
		s.token = token
	}
}

// WithOAuth2 authenticates catalog requests with the client credentials
// flow. Tokens are fetched and refreshed automatically.
func WithOAuth2(cfg clientcredentials.Config) Option {
	return func(s *settings) {
		s.oauth = &cfg
	}
}
