package store

import (
	"context"
	"sync"

	"github.com/yumyai/ddrcohort/pkg/model"
)

// Session pairs the latest partition held in memory with a durable Store.
// There is one writer at a time per process; readers get whichever partition
// the durable store held when they called Load. Partitions are not mutated after Save.
type Session struct {
	durable Store

	mu     sync.RWMutex
	latest *model.Partition
}

func NewSession(durable Store) *Session {
	return &Session{durable: durable}
}

// Save persists p and then makes it the in-memory copy. If the durable write
// fails the previous partition stays current.
func (s *Session) Save(ctx context.Context, p *model.Partition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.durable.Save(ctx, p); err != nil {
		return err
	}
	s.latest = p
	return nil
}

// Load reads the durable store so that partitions saved by other processes
// are seen. A durable result describing the in-memory partition returns the
// in-memory copy. If the durable read fails the in-memory copy is served.
func (s *Session) Load(ctx context.Context) (*model.Partition, error) {
	s.mu.RLock()
	cached := s.latest
	s.mu.RUnlock()

	p, err := s.durable.Load(ctx)
	if err != nil {
		if cached != nil {
			return cached, nil
		}
		return nil, err
	}
	if sameRun(cached, p) {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != cached {
		// saved in this process while the durable read was in flight
		return s.latest, nil
	}
	s.latest = p
	return p, nil
}

func sameRun(a, b *model.Partition) bool {
	return a != nil && b != nil && a.ID == b.ID && a.CreatedAt.Equal(b.CreatedAt)
}
