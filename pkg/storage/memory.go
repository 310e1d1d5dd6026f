package storage

import (
	"context"
	"sync"
)

// MemoryAdapter keeps snapshots in process memory. Used in tests and when no
// durability is wanted.
type MemoryAdapter struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{values: map[string]string{}}
}

func (m *MemoryAdapter) Read(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryAdapter) Write(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryAdapter) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryAdapter) Close() error {
	return nil
}
