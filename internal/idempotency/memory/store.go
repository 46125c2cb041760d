package memory

import (
	"context"
	"sync"

	"github.com/commercekit/commerce-core/internal/idempotency"
)

// Store retains idempotency responses for replaying duplicate requests.
type Store struct {
	mu    sync.RWMutex
	items map[string]idempotency.StoredResponse
}

// NewStore creates a new in-memory idempotency store.
func NewStore() *Store {
	return &Store{items: make(map[string]idempotency.StoredResponse)}
}

// Get returns the stored response for a given key if present.
func (s *Store) Get(_ context.Context, key string) (*idempotency.StoredResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	stored := value
	return &stored, nil
}

// Save stores the response for a key, keeping the first write.
func (s *Store) Save(_ context.Context, key string, response idempotency.StoredResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return nil
	}
	s.items[key] = response
	return nil
}
