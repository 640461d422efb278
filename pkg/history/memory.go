package history

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore keeps commits in memory. It is meant for tests and
// short-lived replays.
type MemoryStore struct {
	mu      sync.RWMutex
	commits map[uint32][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{commits: make(map[uint32][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, id uint32, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.commits[id]; ok {
		return ErrExists
	}
	s.commits[id] = slices.Clone(data)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uint32) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.commits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (s *MemoryStore) Range(ctx context.Context, from, to uint32, fn func(uint32, []byte) error) error {
	s.mu.RLock()
	ids := slices.Sorted(maps.Keys(s.commits))
	s.mu.RUnlock()

	for _, id := range ids {
		if !inRange(id, from, to) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(id, data); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.commits), nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
