package cart

import "context"

// Store persists a buyer's cart lines. Implementations must treat unreadable
// stored state as an empty cart rather than an error.
type Store interface {
	Load(ctx context.Context, userID string) ([]Item, error)
	Save(ctx context.Context, userID string, items []Item) error
	Clear(ctx context.Context, userID string) error
}
