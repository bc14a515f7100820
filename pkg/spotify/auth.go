package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// AuthService owns the client-credentials token lifecycle: fetching, caching,
// freshness validation, forced refresh, and clearing.
//
// The in-memory record and the TokenStore hold the same single token; the
// service is the only writer of both. Overlapping refreshes may each perform
// a fetch and the last writer wins, which is acceptable because any fresh
// token issued for the same credentials is equally usable.
type AuthService struct {
	client *Client
	store  TokenStore

	mu     sync.Mutex
	record *TokenRecord
	// gen increments on every Clear/Refresh. A fetch started under an older
	// generation must not install its result, so a cleared session cannot be
	// resurrected by a stale in-flight response.
	gen uint64
}

// tokenResponse is the token endpoint's JSON response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// HasCredentials reports whether both client ID and client secret are
// configured.
func (a *AuthService) HasCredentials() bool {
	return a.client.clientID != "" && a.client.clientSecret != ""
}

// GetValidToken returns a bearer token with at least FreshnessMargin of
// validity remaining.
//
// Resolution order: in-memory record, then the persisted store, then a full
// fetch from the token endpoint. A token within the freshness margin is never
// returned.
func (a *AuthService) GetValidToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	if a.record != nil && a.record.Fresh(time.Now()) {
		token := a.record.AccessToken
		a.mu.Unlock()
		return token, nil
	}
	gen := a.gen
	a.mu.Unlock()

	if rec := a.loadFromStore(ctx); rec != nil {
		a.adopt(gen, rec)
		return rec.AccessToken, nil
	}

	return a.fetchNewToken(ctx, gen)
}

// Refresh unconditionally discards any cached record, in memory and in the
// store, and fetches a new token. Used for explicit renewal and for recovery
// after an upstream 401.
func (a *AuthService) Refresh(ctx context.Context) (string, error) {
	gen := a.discard(ctx)
	return a.fetchNewToken(ctx, gen)
}

// Clear discards the in-memory and persisted record. It is idempotent and
// never fails; store errors are logged and swallowed.
func (a *AuthService) Clear(ctx context.Context) {
	a.discard(ctx)
}

// TokenInfo returns a non-destructive view of the current token state,
// hydrating the in-memory record from the store if necessary.
func (a *AuthService) TokenInfo(ctx context.Context) TokenInfo {
	a.mu.Lock()
	rec := a.record
	gen := a.gen
	a.mu.Unlock()

	if rec == nil {
		if loaded := a.loadFromStore(ctx); loaded != nil {
			a.adopt(gen, loaded)
			rec = loaded
		}
	}

	if rec == nil {
		return TokenInfo{}
	}

	expiresIn := (rec.ExpiresAt - time.Now().UnixMilli()) / 1000
	if expiresIn < 0 {
		expiresIn = 0
	}

	return TokenInfo{
		HasToken:  true,
		ExpiresAt: rec.ExpiresAt,
		ExpiresIn: expiresIn,
	}
}

// fetchNewToken performs the client-credentials exchange against the token
// endpoint and installs the resulting record under the given generation.
//
// Transport and endpoint failures are logged and collapsed into
// ErrAuthenticationFailed: the detail is treated as sensitive and callers
// only need to know that authentication did not succeed.
func (a *AuthService) fetchNewToken(ctx context.Context, gen uint64) (string, error) {
	if !a.HasCredentials() {
		return "", ErrMissingCredentials
	}

	credentials := base64.StdEncoding.EncodeToString(
		[]byte(a.client.clientID + ":" + a.client.clientSecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.client.accountsURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("spotify: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		a.client.logDebugf("spotify: token request failed: %v", err)
		return "", ErrAuthenticationFailed
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		a.client.logDebugf("spotify: failed to read token response: %v", err)
		return "", ErrAuthenticationFailed
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.client.logDebugf("spotify: token endpoint returned %d", resp.StatusCode)
		return "", ErrAuthenticationFailed
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		a.client.logDebugf("spotify: unparseable token response")
		return "", ErrAuthenticationFailed
	}

	rec := &TokenRecord{
		AccessToken: tr.AccessToken,
		ExpiresAt:   time.Now().UnixMilli() + tr.ExpiresIn*1000,
	}

	a.install(ctx, gen, rec)
	return rec.AccessToken, nil
}

// loadFromStore reads and validates the persisted record.
//
// A record inside the freshness margin is stale: it is deleted and nil is
// returned. An unreadable record means storage is corrupt: the key is deleted
// and nil is returned. Neither case is an error for the caller.
func (a *AuthService) loadFromStore(ctx context.Context) *TokenRecord {
	data, err := a.store.Load(ctx)
	if err != nil {
		a.client.logDebugf("spotify: failed to read token store: %v", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var rec TokenRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.AccessToken == "" {
		a.client.logDebugf("spotify: stored token record is corrupt, deleting")
		if err := a.store.Delete(ctx); err != nil {
			a.client.logDebugf("spotify: failed to delete corrupt record: %v", err)
		}
		return nil
	}

	if !rec.Fresh(time.Now()) {
		if err := a.store.Delete(ctx); err != nil {
			a.client.logDebugf("spotify: failed to delete stale record: %v", err)
		}
		return nil
	}

	return &rec
}

// adopt installs a record loaded from the store into memory, unless a
// Clear/Refresh has happened since the load started.
func (a *AuthService) adopt(gen uint64, rec *TokenRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gen != gen {
		return
	}
	a.record = rec
}

// install caches a freshly fetched record in memory and persists it, unless
// a Clear/Refresh has superseded the fetch.
func (a *AuthService) install(ctx context.Context, gen uint64, rec *TokenRecord) {
	a.mu.Lock()
	if a.gen != gen {
		a.mu.Unlock()
		a.client.logDebugf("spotify: discarding token fetched before clear")
		return
	}
	a.record = rec
	a.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		a.client.logDebugf("spotify: failed to serialize token record: %v", err)
		return
	}
	if err := a.store.Save(ctx, data); err != nil {
		a.client.logDebugf("spotify: failed to persist token record: %v", err)
	}
}

// discard drops the in-memory record, bumps the generation, and deletes the
// persisted record. Returns the new generation for a follow-up fetch.
func (a *AuthService) discard(ctx context.Context) uint64 {
	a.mu.Lock()
	a.record = nil
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	if err := a.store.Delete(ctx); err != nil {
		a.client.logDebugf("spotify: failed to delete persisted token: %v", err)
	}
	return gen
}
