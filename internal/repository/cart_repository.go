package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"handmade-shop/internal/cart"

	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// CartRepository stores one cart per shopper session
type CartRepository interface {
	// Get returns the session cart, or an empty cart if none exists
	Get(ctx context.Context, sessionID string) (cart.Cart, error)
	Save(ctx context.Context, sessionID string, c cart.Cart) error
}

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartRepository stores carts as JSON values that expire after ttl of inactivity
func NewRedisCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &redisCartRepository{client: client, ttl: ttl}
}

func (r *redisCartRepository) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Cart{}, nil
	}
	if err != nil {
		return cart.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	var lines []cart.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return cart.Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}

	c, err := cart.New(lines)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("failed to rebuild cart: %w", err)
	}
	return c, nil
}

func (r *redisCartRepository) Save(ctx context.Context, sessionID string, c cart.Cart) error {
	data, err := json.Marshal(c.Lines())
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKeyPrefix+sessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

type memoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]cart.Cart
}

// NewMemoryCartRepository keeps carts for the lifetime of the process
func NewMemoryCartRepository() CartRepository {
	return &memoryCartRepository{carts: make(map[string]cart.Cart)}
}

func (r *memoryCartRepository) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.carts[sessionID], nil
}

func (r *memoryCartRepository) Save(ctx context.Context, sessionID string, c cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[sessionID] = c
	return nil
}
