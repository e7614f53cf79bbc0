package store

import (
	"context"
	"fmt"
	"time"

	"pos-admin-gateway/internal/domains/cart/model"
	"pos-admin-gateway/pkg/cache"
)

const cartKeyPrefix = "cart:session:"

// RedisStore keeps session carts in Redis so they survive gateway
// restarts when multiple instances sit behind a load balancer.
type RedisStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRedisStore(c cache.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	var cart model.Cart
	found, err := s.cache.Get(ctx, cartKey(sessionID), &cart)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !found {
		return model.NewCart(), nil
	}
	if cart.Lines == nil {
		cart.Lines = []model.CartLine{}
	}
	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, cart *model.Cart) error {
	if err := s.cache.Set(ctx, cartKey(sessionID), cart, s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
