package catalog

import (
	"cmp"
	"slices"
	"strings"

	"handmade-shop/internal/domain"
)

// AllCategories disables the category filter
const AllCategories = "all"

// SortKey selects the product ordering
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a query-string value to a SortKey. Unknown values mean featured.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortPriceLow, SortPriceHigh, SortNewest:
		return k
	default:
		return SortFeatured
	}
}

// ProductQuery holds the shop filter state for one render
type ProductQuery struct {
	Category string
	Search   string
	Sort     SortKey
}

// Query filters and sorts products without touching the input slice.
// All sorts are stable: ties keep their source order.
func Query(products []domain.ProductView, q ProductQuery) []domain.ProductView {
	result := make([]domain.ProductView, 0, len(products))
	search := strings.ToLower(q.Search)

	for _, p := range products {
		if !matchesCategory(p, q.Category) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		result = append(result, p)
	}

	switch q.Sort {
	case SortPriceLow:
		slices.SortStableFunc(result, func(a, b domain.ProductView) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(result, func(a, b domain.ProductView) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortNewest:
		// isNew partition, not a date ordering
		slices.SortStableFunc(result, func(a, b domain.ProductView) int {
			return cmp.Compare(newRank(a), newRank(b))
		})
	}

	return result
}

func matchesCategory(p domain.ProductView, category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return Slugify(p.Category) == category
}

func matchesSearch(p domain.ProductView, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.Category), lowered)
}

func newRank(p domain.ProductView) int {
	if p.IsNew {
		return 0
	}
	return 1
}

// BlogQuery holds the blog filter state for one render
type BlogQuery struct {
	Category string
	Search   string
}

// BlogResult splits filtered posts into the featured slot and the regular grid
type BlogResult struct {
	Featured *domain.BlogPostView  `json:"featured"`
	Posts    []domain.BlogPostView `json:"posts"`
}

// QueryBlog filters posts by category and search text. With no filter active
// the first post is promoted to the featured slot.
func QueryBlog(posts []domain.BlogPostView, q BlogQuery) BlogResult {
	filtered := make([]domain.BlogPostView, 0, len(posts))
	search := strings.ToLower(q.Search)
	allCategories := q.Category == "" || q.Category == AllCategories
	category := Slugify(q.Category)

	for _, p := range posts {
		if !allCategories && Slugify(p.Category) != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Excerpt), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	if allCategories && q.Search == "" && len(filtered) > 0 {
		featured := filtered[0]
		return BlogResult{Featured: &featured, Posts: filtered[1:]}
	}
	return BlogResult{Posts: filtered}
}

// FindProduct returns the product with the given id
func FindProduct(products []domain.ProductView, id string) (domain.ProductView, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.ProductView{}, false
}

// Related returns up to limit other products from the same category
func Related(products []domain.ProductView, product domain.ProductView, limit int) []domain.ProductView {
	related := []domain.ProductView{}
	for _, p := range products {
		if len(related) >= limit {
			break
		}
		if p.Category == product.Category && p.ID != product.ID {
			related = append(related, p)
		}
	}
	return related
}

// Featured returns the first limit products in source order
func Featured(products []domain.ProductView, limit int) []domain.ProductView {
	if limit > len(products) {
		limit = len(products)
	}
	if limit < 0 {
		limit = 0
	}
	return slices.Clone(products[:limit])
}
