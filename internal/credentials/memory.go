package credentials

import (
	"context"
	"sync"
	"time"

	app_errors "flow-chat/frontend/internal/errors"
)

// MemoryStore keeps credentials in process memory. Used by tests and by
// the terminal client when no database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return "", time.Time{}, app_errors.ErrNotFound
	}
	return e.value, e.expiresAt, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
