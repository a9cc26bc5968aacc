package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/nfa/pkg/domain"
)

// Store implements ports.ComputationStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Computation
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Computation),
	}
}

// Save persists a copy of the computation.
func (s *Store) Save(ctx context.Context, c *domain.Computation) error {
	copied := c.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[c.ID] = copied
	return nil
}

// Load retrieves a copy of the computation so callers can't mutate the store by pointer.
func (s *Store) Load(ctx context.Context, id string) (*domain.Computation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data[id]
	if !ok {
		return nil, domain.ErrComputationNotFound
	}
	return c.Clone(), nil
}

// Delete removes the computation.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored computation IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
