package store

import (
	"context"
	"sync"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// MemoryStore keeps charts in a map. Contents are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]*Chart
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]*Chart)}
}

func (s *MemoryStore) Save(ctx context.Context, c *Chart) error {
	if err := errors.ValidateChartID(c.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charts[c.ID]; ok {
		return exists(c.ID)
	}
	cp := *c
	s.charts[c.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.charts[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.charts, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len returns the number of stored charts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.charts)
}

var _ Store = (*MemoryStore)(nil)
