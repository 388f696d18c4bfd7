package memory

import (
	"context"
	"sync"

	"commerce-pos/internal/core"
)

// Store is the in-process implementation of the register's persistence
// boundary. It backs tests and demo mode (no DATABASE_URL). Contents do not
// survive a restart, which the register core explicitly tolerates.
type Store struct {
	mu       sync.RWMutex
	products []core.Product
	labels   map[string]core.ManualLabel
	sales    core.SalesState
}

// NewStore seeds the catalog the InventoryService will load.
func NewStore(products []core.Product) *Store {
	return &Store{
		products: products,
		labels:   make(map[string]core.ManualLabel),
	}
}

func (s *Store) LoadProducts(ctx context.Context) ([]core.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *Store) PutLabel(ctx context.Context, label core.ManualLabel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[label.ID] = label
	return nil
}

func (s *Store) GetLabel(ctx context.Context, id string) (core.ManualLabel, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	label, ok := s.labels[id]
	return label, ok, nil
}

func (s *Store) LoadState(ctx context.Context) (core.SalesState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.sales
	if s.sales.DayStats != nil {
		ds := *s.sales.DayStats
		state.DayStats = &ds
	}
	return state, nil
}

func (s *Store) SaveState(ctx context.Context, state core.SalesState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state.DayStats != nil {
		ds := *state.DayStats
		state.DayStats = &ds
	}
	s.sales = state
	return nil
}
