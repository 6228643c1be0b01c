// Package storage persists the editor state on the local machine as a small
// set of string values under fixed keys.
package storage

import (
	"context"
	"errors"
	"sync"
)

// Keys under which state is persisted.
const (
	KeyExpenses = "kimi-expense-report"
	KeyBudget   = "monthlyBudget"
	KeyLocale   = "locale"
	KeyTheme    = "theme"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is a string key/value store.
type KV interface {
	// Get returns ErrKeyNotFound when key has never been set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Close() error { return nil }
