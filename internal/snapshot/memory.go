package snapshot

import (
	"context"
	"sync"
)

// MemoryStore is the in-process fallback used when no durable backend is
// configured, and the store of choice in tests. Data does not survive a
// restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrNotFound{}
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
