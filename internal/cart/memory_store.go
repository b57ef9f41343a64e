package cart

import (
	"context"
	"sync"
)

// memoryStore is an in-process Store used by tests and by local development
// without Redis.
type memoryStore struct {
	mu    sync.Mutex
	carts map[string][]Item
}

// NewMemoryStore returns a Store holding carts in process memory.
func NewMemoryStore() Store {
	return &memoryStore{carts: map[string][]Item{}}
}

func (s *memoryStore) Load(ctx context.Context, userID string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.carts[userID]
	if !ok {
		return []Item{}, nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (s *memoryStore) Save(ctx context.Context, userID string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]Item, len(items))
	copy(stored, items)
	s.carts[userID] = stored
	return nil
}

func (s *memoryStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
