package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/ohmasense/storefront-backend/pkg/redis"
)

// DefaultTTL keeps abandoned carts around for a month before Redis expires them.
const DefaultTTL = 30 * 24 * time.Hour

type redisHandle interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

type redisStore struct {
	client redisHandle
	ttl    time.Duration
}

// NewRedisStore returns a Store backed by the shared Redis client.
func NewRedisStore(client *pkgredis.Client, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Load(ctx context.Context, userID string) ([]Item, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(userID))
	if err != nil {
		if pkgredis.IsNil(err) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// corrupt state reads as an empty cart
		return []Item{}, nil
	}
	return items, nil
}

func (s *redisStore) Save(ctx context.Context, userID string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(userID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(userID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
