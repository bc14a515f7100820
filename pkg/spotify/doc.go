// Package spotify provides a client library for the Spotify Web API using
// the Client Credentials grant.
//
// # Overview
//
// This package implements a Go client for the parts of the Spotify Web API
// needed to explore artists: searching, fetching artist details, and listing
// an artist's albums. Its centerpiece is the token authority, which acquires
// an access token with the OAuth2 Client Credentials flow, caches it durably,
// validates its freshness with a five-minute margin, and transparently
// refreshes it when the API rejects a request.
//
// # Quick Start
//
// Create a client with your application credentials:
//
//	import "github.com/spotkit/spotkit/pkg/spotify"
//
//	client := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//
//	page, err := client.Search().Artists(ctx, spotify.SearchParams{Query: "nirvana"})
//
// # Token Lifecycle
//
// Tokens are fetched lazily on the first request and cached both in memory
// and in the configured TokenStore. A cached token is only used while it has
// more than five minutes of validity left; within that margin it is treated
// as expired and replaced, so a request plus its retry can never race the
// real expiry. Every request attaches the token automatically; a 401 from
// the API triggers one forced refresh and one retry.
//
// The token state can be inspected and controlled directly:
//
//	info := client.Auth().TokenInfo(ctx)   // HasToken, ExpiresAt, ExpiresIn
//	_, err := client.Auth().Refresh(ctx)   // force a new token
//	client.Auth().Clear(ctx)               // drop memory and persisted record
//
// # Durable Storage
//
// By default the token lives only in memory. Supply a TokenStore to persist
// it across process restarts:
//
//	store, err := tokenstore.NewFile(path)
//	client := spotify.NewClient(spotify.Config{
//	    ClientID:     id,
//	    ClientSecret: secret,
//	    TokenStore:   store,
//	})
//
// Corrupt or stale stored records self-heal: they are deleted and a fresh
// token is fetched, without surfacing an error.
//
// # Error Handling
//
// Domain calls return *Error for API failures:
//
//	_, err := client.Artists().Get(ctx, id)
//	var apiErr *spotify.Error
//	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
//	    // unknown artist
//	}
//
// Token acquisition failures are collapsed into two sentinels:
// ErrMissingCredentials when the client ID or secret is not configured, and
// ErrAuthenticationFailed for everything else. The underlying transport
// detail is logged, not returned.
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and timeouts.
package spotify
