package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ZeyadMohamed5/Morph/internal/cart"
)

const keyPrefix = "storefront:cart:"

// RedisStore persists the cart collection in Redis under a single key per
// client id, so a cart can follow a shopper across devices.
type RedisStore struct {
	client   *redis.Client
	clientID string
}

// NewRedisStore creates a Redis-backed snapshot store scoped to clientID.
func NewRedisStore(client *redis.Client, clientID string) *RedisStore {
	return &RedisStore{client: client, clientID: clientID}
}

// Load retrieves the persisted collection.
func (r *RedisStore) Load(ctx context.Context) ([]cart.LineItem, error) {
	data, err := r.client.Get(ctx, keyPrefix+r.clientID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, cart.ErrNoSnapshot
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var items []cart.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart snapshot: %w", err)
	}
	return items, nil
}

// Save overwrites the persisted collection. No TTL: an abandoned cart is
// cleaned up by the shopper, not the store.
func (r *RedisStore) Save(ctx context.Context, items []cart.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+r.clientID, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}
