package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"handmade-shop/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStaleLoad is returned when a newer refresh started before this one finished
var ErrStaleLoad = errors.New("snapshot superseded by a newer load")

// Loader fetches complete snapshots from a Source and keeps the latest one.
// Results are applied only when they belong to the most recently issued load.
type Loader struct {
	src    Source
	logger *zap.Logger

	issued atomic.Uint64

	mu      sync.RWMutex
	current *Snapshot
}

// NewLoader creates a Loader over src
func NewLoader(src Source, logger *zap.Logger) *Loader {
	return &Loader{src: src, logger: logger}
}

// Current returns the applied snapshot. ok is false until the first load completes.
func (l *Loader) Current() (*Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current, l.current != nil
}

// Refresh fetches all three collections and applies them as one snapshot.
// On failure the previous snapshot stays in place.
func (l *Loader) Refresh(ctx context.Context) (*Snapshot, error) {
	generation := l.issued.Add(1)

	snap := &Snapshot{Generation: generation}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := l.src.FetchCategories(gctx)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		snap.Categories = categories
		return nil
	})
	g.Go(func() error {
		products, err := l.src.FetchProducts(gctx)
		if err != nil {
			return fmt.Errorf("fetch products: %w", err)
		}
		snap.Products = products
		return nil
	})
	g.Go(func() error {
		posts, err := l.src.FetchBlogPosts(gctx)
		if err != nil {
			return fmt.Errorf("fetch blog posts: %w", err)
		}
		snap.BlogPosts = posts
		return nil
	})

	if err := g.Wait(); err != nil {
		l.logger.Warn("Catalog refresh failed", zap.Uint64("generation", generation), zap.Error(err))
		return nil, err
	}

	if len(snap.Categories) == 0 {
		return nil, fmt.Errorf("%w: category table is empty", domain.ErrConfig)
	}
	seen := make(map[string]struct{}, len(snap.Categories))
	for _, c := range snap.Categories {
		if _, dup := seen[c.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate category slug %q", domain.ErrConfig, c.Slug)
		}
		seen[c.Slug] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if latest := l.issued.Load(); generation != latest {
		l.logger.Debug("Discarding stale catalog snapshot",
			zap.Uint64("generation", generation),
			zap.Uint64("latest", latest),
		)
		return nil, ErrStaleLoad
	}

	l.current = snap
	l.logger.Info("Catalog snapshot applied",
		zap.Uint64("generation", generation),
		zap.Int("categories", len(snap.Categories)),
		zap.Int("products", len(snap.Products)),
		zap.Int("blog_posts", len(snap.BlogPosts)),
	)

	return snap, nil
}

// Run refreshes on every tick until ctx is cancelled
func (l *Loader) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := l.Refresh(ctx); err != nil && !errors.Is(err, ErrStaleLoad) {
				l.logger.Error("Scheduled catalog refresh failed", zap.Error(err))
			}
		}
	}
}
