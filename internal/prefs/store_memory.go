package prefs

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"moneyguard/pkg/platform/sentinel"
)

// InMemoryStore is the default Store for tests and single-process setups.
// Values are kept as strings so behavior matches the Redis backend exactly.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{values: make(map[string]string)}
}

func (s *InMemoryStore) get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("prefs key %q: %w", key, sentinel.ErrNotFound)
	}
	return v, nil
}

func (s *InMemoryStore) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *InMemoryStore) GetString(_ context.Context, key string) (string, error) {
	return s.get(key)
}

func (s *InMemoryStore) SetString(_ context.Context, key, value string) error {
	s.set(key, value)
	return nil
}

func (s *InMemoryStore) GetBool(_ context.Context, key string) (bool, error) {
	raw, err := s.get(key)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("prefs key %q: parse bool: %w", key, err)
	}
	return v, nil
}

func (s *InMemoryStore) SetBool(_ context.Context, key string, value bool) error {
	s.set(key, strconv.FormatBool(value))
	return nil
}

func (s *InMemoryStore) GetInt(_ context.Context, key string) (int, error) {
	raw, err := s.get(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("prefs key %q: parse int: %w", key, err)
	}
	return v, nil
}

func (s *InMemoryStore) SetInt(_ context.Context, key string, value int) error {
	s.set(key, strconv.Itoa(value))
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
