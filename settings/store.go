package settings

import (
	"context"
	"sync"
)

// Store is the external keeper of grouped settings.
type Store interface {
	// ReadGroup returns every entry stored under the named group.
	ReadGroup(ctx context.Context, group string) (map[string]any, error)
	// WriteGroup upserts the given entries under the named group. Stored
	// entries not named in values stay untouched.
	WriteGroup(ctx context.Context, group string, values map[string]any) error
}

// MemStore is an in-memory Store for tests and ephemeral runs. It is safe
// for concurrent use.
type MemStore struct {
	mu     sync.Mutex
	groups map[string]map[string]any
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{groups: make(map[string]map[string]any)}
}

func (m *MemStore) ReadGroup(ctx context.Context, group string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	values := make(map[string]any, len(m.groups[group]))
	for k, v := range m.groups[group] {
		values[k] = v
	}
	return values, nil
}

func (m *MemStore) WriteGroup(ctx context.Context, group string, values map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g := m.groups[group]
	if g == nil {
		g = make(map[string]any, len(values))
		m.groups[group] = g
	}
	for k, v := range values {
		g[k] = v
	}
	return nil
}
