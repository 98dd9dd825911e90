package store

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store with the same backup semantics as FileStore.
// It exists so the resource service and handlers can be tested without
// touching the file system.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemStore) Load(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Exists implements Store.
func (s *MemStore) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[name]
	return ok, nil
}

// Replace implements Store.
func (s *MemStore) Replace(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.docs[name]; ok {
		backup := make([]byte, len(prev))
		copy(backup, prev)
		s.docs[name+BackupSuffix] = backup
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	s.docs[name] = stored
	return nil
}

// Seed puts content for a name without creating a backup, for test setup.
func (s *MemStore) Seed(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.docs[name] = stored
}
