package spotify

import (
	"context"
	"sync"
	"time"
)

// FreshnessMargin is the buffer subtracted from a token's expiry when
// deciding whether it is still usable. A token within the margin is treated
// as already expired so a request and its single retry cannot race expiry.
const FreshnessMargin = 5 * time.Minute

// TokenRecord is the persisted token entity: the bearer credential and its
// absolute expiry instant in epoch milliseconds.
type TokenRecord struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   int64  `json:"expiresAt"`
}

// Fresh reports whether the record is usable at the given instant, applying
// the freshness margin.
func (r *TokenRecord) Fresh(now time.Time) bool {
	return now.UnixMilli()+FreshnessMargin.Milliseconds() < r.ExpiresAt
}

// TokenInfo is a non-destructive view of the current token state.
type TokenInfo struct {
	HasToken  bool  // whether a usable token record exists
	ExpiresAt int64 // absolute expiry, epoch milliseconds (zero if no token)
	ExpiresIn int64 // seconds until expiry, never negative (zero if no token)
}

// TokenStore is a durable single-key persistence surface for the serialized
// token record. Implementations must treat a missing record as (nil, nil),
// not as an error.
type TokenStore interface {
	// Load returns the stored record bytes, or nil if none is stored.
	Load(ctx context.Context) ([]byte, error)
	// Save stores the record bytes, replacing any previous record.
	Save(ctx context.Context, data []byte) error
	// Delete removes the stored record. Deleting a missing record is not
	// an error.
	Delete(ctx context.Context) error
}

// MemoryTokenStore is an in-memory TokenStore, used as the default store and
// in tests.
type MemoryTokenStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load returns the stored bytes, or nil if nothing is stored.
func (s *MemoryTokenStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Save stores a copy of the given bytes.
func (s *MemoryTokenStore) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// Delete removes the stored bytes.
func (s *MemoryTokenStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
