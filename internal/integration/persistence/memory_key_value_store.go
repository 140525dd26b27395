package persistence

import (
	"context"
	"sync"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// memoryKeyValueStore keeps values in process memory. Nothing survives a
// restart; it backs STORAGE_DRIVER=memory and tests.
type memoryKeyValueStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKeyValueStore creates an empty in-memory key-value store.
func NewMemoryKeyValueStore() adapter.KeyValueStore {
	return &memoryKeyValueStore{values: make(map[string]string)}
}

func (s *memoryKeyValueStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", domainerror.ErrKeyNotFound
	}
	return value, nil
}

func (s *memoryKeyValueStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryKeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *memoryKeyValueStore) Ping(context.Context) error {
	return nil
}
