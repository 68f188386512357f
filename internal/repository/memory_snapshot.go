package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemorySnapshotStore is a process-local SnapshotStore. Nothing survives a
// restart.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]byte)}
}

func (s *MemorySnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (s *MemorySnapshotStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}
