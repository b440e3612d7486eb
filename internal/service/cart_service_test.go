package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"handmade-shop/internal/cart"
	"handmade-shop/internal/domain"
	"handmade-shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenCarts struct{}

func (brokenCarts) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	return cart.Cart{}, errors.New("store offline")
}

func (brokenCarts) Save(ctx context.Context, sessionID string, c cart.Cart) error {
	return errors.New("store offline")
}

func newTestCarts(t *testing.T, carts repository.CartRepository) CartService {
	t.Helper()
	return NewCartService(newTestCatalog(t, loadedSnapshot(t)), carts, zap.NewNop())
}

func TestCartService_AddAccumulates(t *testing.T) {
	svc := newTestCarts(t, repository.NewMemoryCartRepository())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "1", 1)
	require.NoError(t, err)
	c, err := svc.Add(ctx, "s1", "1", 2)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Quantity("1"))
	assert.Equal(t, 105.0, c.Subtotal())

	stored, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Quantity("1"))

	other, err := svc.Get(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestCartService_AddErrors(t *testing.T) {
	svc := newTestCarts(t, repository.NewMemoryCartRepository())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "999", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.Add(ctx, "s1", "1", 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartService_StoreFailure(t *testing.T) {
	svc := newTestCarts(t, brokenCarts{})

	_, err := svc.Add(context.Background(), "s1", "1", 1)
	assert.ErrorContains(t, err, "failed to get cart")

	_, err = svc.Get(context.Background(), "s1")
	assert.ErrorContains(t, err, "store offline")
}

func TestCartService_ConcurrentAddsAreNotLost(t *testing.T) {
	svc := newTestCarts(t, repository.NewMemoryCartRepository())
	ctx := context.Background()

	const adds = 50
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Add(ctx, "shared", "3", 1)
		}()
	}
	wg.Wait()

	c, err := svc.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, adds, c.Quantity("3"))
}
