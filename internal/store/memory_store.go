package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps serialized values in process memory. It round-trips
// through JSON exactly like the Redis backend so both behave the same on
// malformed data.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}

	return decode(ctx, key, raw, dest), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	m.SetRaw(key, data)

	return nil
}

// SetRaw stores bytes as-is, bypassing encoding.
func (m *MemoryStore) SetRaw(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), raw...)
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
