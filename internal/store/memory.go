package store

import (
	"context"
	"sort"
	"sync"

	domain "github.com/commercekit/marketsync/pkg/types"
)

// Memory is a concurrency-safe in-memory Store.
type Memory struct {
	mu     sync.RWMutex
	drafts map[string]domain.ProductDraft
	orders map[int64]domain.ImportedOrder
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		drafts: map[string]domain.ProductDraft{},
		orders: map[int64]domain.ImportedOrder{},
	}
}

// SaveDraft implements Store.
func (m *Memory) SaveDraft(_ context.Context, draft domain.ProductDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[draft.SKU] = draft
	return nil
}

// GetDraft implements Store.
func (m *Memory) GetDraft(_ context.Context, sku string) (*domain.ProductDraft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.drafts[sku]; ok {
		return &d, nil
	}
	return nil, nil
}

// SaveOrder implements Store.
func (m *Memory) SaveOrder(_ context.Context, order domain.ImportedOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

// GetOrder implements Store.
func (m *Memory) GetOrder(_ context.Context, id int64) (*domain.ImportedOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

// ListOrders implements Store.
func (m *Memory) ListOrders(_ context.Context) ([]domain.ImportedOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.ImportedOrder, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out, nil
}
