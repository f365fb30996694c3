package store

import (
	"context"
	"sync"

	"github.com/zeu5/bankers-rl/policies"
)

// MemoryStore keeps a copy of the table in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	table *policies.QTable
}

var _ PolicyStore = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*policies.QTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.table == nil {
		return nil, ErrNotFound
	}
	return m.table.Copy(), nil
}

func (m *MemoryStore) Save(_ context.Context, table *policies.QTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = table.Copy()
	return nil
}
