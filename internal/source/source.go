// Package source supplies raw catalog records from interchangeable backends
// and keeps the latest complete snapshot of them.
package source

import (
	"context"

	"handmade-shop/internal/domain"
)

// Source defines the record source contract shared by every backend
type Source interface {
	FetchCategories(ctx context.Context) ([]domain.Category, error)
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchBlogPosts(ctx context.Context) ([]domain.BlogPost, error)
}

// Snapshot is one complete set of raw records
type Snapshot struct {
	Generation uint64
	Categories []domain.Category
	Products   []domain.Product
	BlogPosts  []domain.BlogPost
}
