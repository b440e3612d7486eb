package catalog

import (
	"context"
	"testing"

	"handmade-shop/internal/domain"
	"handmade-shop/internal/source"

	"github.com/stretchr/testify/require"
)

// storefront maps the built-in static table the same way the service does
func storefront(t *testing.T) ([]domain.ProductView, []domain.BlogPostView) {
	t.Helper()

	ctx := context.Background()
	src := source.NewStaticSource()
	assets := DefaultAssets("")

	categories, err := src.FetchCategories(ctx)
	require.NoError(t, err)
	products, err := src.FetchProducts(ctx)
	require.NoError(t, err)
	posts, err := src.FetchBlogPosts(ctx)
	require.NoError(t, err)

	productViews, err := MapProducts(products, categories, assets)
	require.NoError(t, err)
	postViews, err := MapBlogPosts(posts, assets.BlogPool())
	require.NoError(t, err)

	return productViews, postViews
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func productIDs(products []domain.ProductView) []string {
	return ids(products, func(p domain.ProductView) string { return p.ID })
}

func postIDs(posts []domain.BlogPostView) []string {
	return ids(posts, func(p domain.BlogPostView) string { return p.ID })
}
