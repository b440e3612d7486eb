package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"handmade-shop/internal/cart"
	"handmade-shop/internal/repository"

	"go.uber.org/zap"
)

const sessionLockStripes = 64

// CartService defines the interface for session carts
type CartService interface {
	Get(ctx context.Context, sessionID string) (cart.Cart, error)
	Add(ctx context.Context, sessionID, productID string, quantity int) (cart.Cart, error)
}

type cartService struct {
	catalog CatalogService
	carts   repository.CartRepository
	logger  *zap.Logger

	// adds for one session run one at a time
	locks [sessionLockStripes]sync.Mutex
}

// NewCartService creates a new instance of CartService
func NewCartService(catalog CatalogService, carts repository.CartRepository, logger *zap.Logger) CartService {
	return &cartService{
		catalog: catalog,
		carts:   carts,
		logger:  logger,
	}
}

func (s *cartService) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%sessionLockStripes]
}

func (s *cartService) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("failed to get cart: %w", err)
	}
	return c, nil
}

// Add resolves the product from the current catalog and accumulates it
func (s *cartService) Add(ctx context.Context, sessionID, productID string, quantity int) (cart.Cart, error) {
	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return cart.Cart{}, err
	}

	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	current, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("failed to get cart: %w", err)
	}

	next, err := cart.Add(current, product, quantity)
	if err != nil {
		return cart.Cart{}, err
	}

	if err := s.carts.Save(ctx, sessionID, next); err != nil {
		return cart.Cart{}, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug("Added to cart",
		zap.String("session_id", sessionID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("line_quantity", next.Quantity(productID)),
	)

	return next, nil
}
