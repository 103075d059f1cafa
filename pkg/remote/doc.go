// Package remote fetches translation catalogs from an HTTP endpoint.
//
// The endpoint serves a single JSON document mapping locale codes to
// translation trees:
//
//	{
//	    "en": {"greeting": "hello {name}"},
//	    "de": {"greeting": "hallo {name}"}
//	}
//
// # Usage
//
//	source, err := remote.New("https://cdn.example.com/i18n/catalog.json")
//	if err != nil {
//	    return err
//	}
//	if err := source.Load(ctx, repo); err != nil {
//	    return err
//	}
//
// # Caching
//
// Fetch remembers the ETag of the last successful download and sends it as
// If-None-Match on the next request. A 304 Not Modified answer serves the
// cached catalogs, so periodic refresh against an unchanged document costs
// a single round trip.
//
// # Authentication
//
// Private endpoints authenticate with a static bearer token or the OAuth2
// client credentials flow:
//
//	source, err := remote.New(url, remote.WithToken(apiToken))
//
//	source, err := remote.New(url, remote.WithOAuth2(clientcredentials.Config{
//	    ClientID:     cfg.ClientID,
//	    ClientSecret: cfg.ClientSecret,
//	    TokenURL:     cfg.TokenURL,
//	}))
package remote
