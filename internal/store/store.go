package store

import (
	"context"
	"sync"
)

// Keys used by the session, namespaced to avoid collisions with
// unrelated data sharing the same backend.
const (
	KeyPrefix    = "wemove_"
	KeyVehicles  = KeyPrefix + "evs"
	KeyWallet    = KeyPrefix + "wallet"
	KeyRides     = KeyPrefix + "rides"
	KeyRatings   = KeyPrefix + "ratings"
	KeyFeedbacks = KeyPrefix + "feedbacks"
	KeyTheme     = KeyPrefix + "theme"
	KeyOnboard   = KeyPrefix + "seen_onboard"
)

// Store defines blob persistence for session state. Get reports
// presence explicitly; a missing key is not an error. Callers fall
// back to hardcoded defaults on absence or malformed data.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(val))
	copy(cp, val)
	m.blobs[key] = cp
	return nil
}
