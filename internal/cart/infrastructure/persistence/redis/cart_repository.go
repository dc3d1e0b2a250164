// Package redis stores carts as JSON documents with a TTL, so
// abandoned carts expire on their own.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/shopping/internal/cart/domain"
)

type cartRepository struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewCartRepository(client redis.UniversalClient, ttl time.Duration) domain.CartRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &cartRepository{
		client: client,
		prefix: "cart:",
		ttl:    ttl,
	}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart from redis: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	if cart == nil {
		return nil
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	return r.client.Set(ctx, r.key(cart.UserID), data, r.ttl).Err()
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}

func (r *cartRepository) key(userID string) string {
	return r.prefix + userID
}
