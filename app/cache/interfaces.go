package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached response. CreatedAt drives staleness detection
// against the feed file's modification time; ExpiresAt bounds the entry's
// lifetime independently of the backing store's own TTL.
type Entry struct {
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Store is the external cache collaborator. A nil Store means caching is
// disabled and every request computes fresh.
type Store interface {
	// Get returns the entry for key, or nil when the key is absent.
	Get(key string) (*Entry, error)
	// Set stores payload under key with a fresh creation time.
	Set(key string, payload []byte) error
	// ClearAll removes every entry whose key starts with prefix.
	ClearAll(prefix string) error
}
