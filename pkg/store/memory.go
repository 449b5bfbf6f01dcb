package store

import (
	"context"
	"sync"

	"github.com/yumyai/ddrcohort/pkg/model"
)

// MemoryStore keeps the encoded partition in process. Used by tests and
// DDR_COHORT_STORE=memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, p *model.Partition) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (*model.Partition, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()
	if data == nil {
		return nil, ErrNotFound
	}
	return Decode(data)
}
