package cart

import (
	"context"
	"sync"
)

// MemoryStorage backs carts with a process-local map. Used in tests and
// when redis is not reachable at startup.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string]*Cart)}
}

func (m *MemoryStorage) Load(_ context.Context, cartID string) (*Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.carts[cartID]
	if !ok {
		return nil, ErrNotFound
	}
	return c.Clone(), nil
}

func (m *MemoryStorage) Save(_ context.Context, cartID string, c *Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = c.Clone()
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	return nil
}
