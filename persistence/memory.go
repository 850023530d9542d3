package persistence

import (
	"context"
	"sync"
)

// MemoryStore keeps vectors in process memory. Nothing survives a restart;
// it exists so the cache wiring works uniformly in tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewMemoryStore creates an empty in-memory vector store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vectors: make(map[string][]float32)}
}

// Get returns the vector for key, if present.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]float32, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	vec, ok := s.vectors[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]float32, len(vec))
	copy(out, vec)
	return out, true, nil
}

// Put stores a copy of vector under key.
func (s *MemoryStore) Put(ctx context.Context, key string, vector []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]float32, len(vector))
	copy(stored, vector)
	s.mu.Lock()
	s.vectors[key] = stored
	s.mu.Unlock()
	return nil
}

// Len reports the number of cached vectors.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
