// Package session holds the client's single piece of durable state, the
// session token, and the gate that derives authentication state from it.
package session

import (
	"sync"
)

// maskedPrefixLen is how much of a token may appear in logs and output
const maskedPrefixLen = 10

// Store persists the session token.
// Load returns an empty token and a nil error when no token is stored.
// Clear is idempotent.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryStore keeps the token in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns a store seeded with token (which may be empty)
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// Masked returns a prefix of token safe for logs, e.g. "eyJhbGciOi..."
func Masked(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= maskedPrefixLen {
		return token[:len(token)/2] + "..."
	}
	return token[:maskedPrefixLen] + "..."
}
