package source

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"handmade-shop/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// gatedSource blocks the first category fetch until gate is closed
type gatedSource struct {
	Source
	entered chan struct{}
	gate    chan struct{}
	calls   atomic.Int32
}

func (s *gatedSource) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	if s.calls.Add(1) == 1 {
		close(s.entered)
		<-s.gate
	}
	return s.Source.FetchCategories(ctx)
}

// failingSource fails product fetches once failing is set
type failingSource struct {
	Source
	failing atomic.Bool
}

func (s *failingSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if s.failing.Load() {
		return nil, domain.ErrSourceUnavailable
	}
	return s.Source.FetchProducts(ctx)
}

type emptyCategories struct{ Source }

func (emptyCategories) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{}, nil
}

type duplicateSlugs struct{ Source }

func (d duplicateSlugs) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := d.Source.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}
	clash := categories[0]
	clash.ID = "99"
	return append(categories, clash), nil
}

func TestLoader_NoSnapshotBeforeFirstLoad(t *testing.T) {
	loader := NewLoader(NewStaticSource(), zap.NewNop())

	snap, ok := loader.Current()
	assert.False(t, ok)
	assert.Nil(t, snap)
}

func TestLoader_RefreshApplies(t *testing.T) {
	loader := NewLoader(NewStaticSource(), zap.NewNop())

	snap, err := loader.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.Len(t, snap.Categories, 5)
	assert.Len(t, snap.Products, 12)
	assert.Len(t, snap.BlogPosts, 6)

	current, ok := loader.Current()
	require.True(t, ok)
	assert.Same(t, snap, current)
}

func TestLoader_StaleResultIsDiscarded(t *testing.T) {
	src := &gatedSource{Source: NewStaticSource(), entered: make(chan struct{}), gate: make(chan struct{})}
	loader := NewLoader(src, zap.NewNop())

	slow := make(chan error, 1)
	go func() {
		_, err := loader.Refresh(context.Background())
		slow <- err
	}()
	<-src.entered

	fast, err := loader.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), fast.Generation)

	close(src.gate)
	assert.ErrorIs(t, <-slow, ErrStaleLoad)

	current, ok := loader.Current()
	require.True(t, ok)
	assert.Equal(t, uint64(2), current.Generation)
}

func TestLoader_FailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	src := &failingSource{Source: NewStaticSource()}
	loader := NewLoader(src, zap.NewNop())

	first, err := loader.Refresh(context.Background())
	require.NoError(t, err)

	src.failing.Store(true)
	_, err = loader.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)

	current, ok := loader.Current()
	require.True(t, ok)
	assert.Same(t, first, current)
}

func TestLoader_EmptyCategoryTableIsConfigError(t *testing.T) {
	loader := NewLoader(emptyCategories{NewStaticSource()}, zap.NewNop())

	_, err := loader.Refresh(context.Background())
	assert.True(t, errors.Is(err, domain.ErrConfig))

	_, ok := loader.Current()
	assert.False(t, ok)
}

func TestLoader_DuplicateSlugIsConfigError(t *testing.T) {
	loader := NewLoader(duplicateSlugs{NewStaticSource()}, zap.NewNop())

	_, err := loader.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "duplicate category slug")

	_, ok := loader.Current()
	assert.False(t, ok)
}

func TestLoader_RunRefreshesUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	loader := NewLoader(NewStaticSource(), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		loader.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		snap, ok := loader.Current()
		return ok && snap.Generation >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestLoader_RunWithoutIntervalReturns(t *testing.T) {
	loader := NewLoader(NewStaticSource(), zap.NewNop())
	loader.Run(context.Background(), 0)

	_, ok := loader.Current()
	assert.False(t, ok)
}
