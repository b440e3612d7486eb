package catalog

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"handmade-shop/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCategoryName is shown for products whose category is missing
	DefaultCategoryName = "Uncategorized"

	// FallbackPostDate is shown for posts without a publication time
	FallbackPostDate = "Dec 15, 2024"

	postDateLayout = "Jan 2, 2006"

	// Prices have at most this many integer digits and fractional digits
	maxPriceDigits = 12
	maxPriceScale  = 12
)

// Unicode-aware whitespace: ASCII controls, every space separator, line and
// paragraph separators and the BOM.
var whitespaceRun = regexp.MustCompile(`[\t\n\x0B\f\r\p{Z}\x{FEFF}]+`)

// Slugify lower-cases a display name and collapses whitespace runs to hyphens.
// "Home Decor" -> "home-decor"
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// FormatCategoryName turns a category slug back into a page title
func FormatCategoryName(slug string) string {
	if slug == "" || slug == AllCategories {
		return "All Products"
	}

	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// ParsePrice parses a decimal price string. Malformed and negative values are rejected.
func ParsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", domain.ErrParse, s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w %q: negative amount", domain.ErrParse, s)
	}
	// Check magnitude before converting: a large exponent expands to a huge big.Int
	exp := d.Exponent()
	if exp < -maxPriceScale || exp > maxPriceDigits || d.NumDigits()+int(exp) > maxPriceDigits {
		return 0, fmt.Errorf("%w %q: amount out of range", domain.ErrParse, s)
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w %q: amount out of range", domain.ErrParse, s)
	}
	return f, nil
}

// MapProduct builds the view model for a raw product
func MapProduct(raw domain.Product, categories []domain.Category, assets AssetCatalog) (domain.ProductView, error) {
	return mapProduct(raw, indexCategories(categories), assets)
}

// MapProducts maps every product in order. Records with unparseable prices are
// left out and their errors are joined into the returned error.
func MapProducts(raws []domain.Product, categories []domain.Category, assets AssetCatalog) ([]domain.ProductView, error) {
	index := indexCategories(categories)

	views := make([]domain.ProductView, 0, len(raws))
	var errs []error
	for _, raw := range raws {
		view, err := mapProduct(raw, index, assets)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		views = append(views, view)
	}

	return views, errors.Join(errs...)
}

func mapProduct(raw domain.Product, categories map[string]domain.Category, assets AssetCatalog) (domain.ProductView, error) {
	price, err := ParsePrice(raw.Price)
	if err != nil {
		return domain.ProductView{}, fmt.Errorf("product %s price: %w", raw.ID, err)
	}

	var originalPrice *float64
	if raw.OriginalPrice != nil {
		v, err := ParsePrice(*raw.OriginalPrice)
		if err != nil {
			return domain.ProductView{}, fmt.Errorf("product %s original price: %w", raw.ID, err)
		}
		originalPrice = &v
	}

	categoryName := DefaultCategoryName
	image := assets.URL(assets.DefaultImage)
	if category, ok := categories[raw.CategoryID]; ok {
		categoryName = category.Name
		image = assets.ImageFor(category.Slug)
	}

	return domain.ProductView{
		ID:            raw.ID,
		Name:          raw.Name,
		Price:         price,
		OriginalPrice: originalPrice,
		Image:         image,
		Category:      categoryName,
		IsNew:         raw.IsNew,
		IsSoldOut:     raw.IsSoldOut,
		MadeToOrder:   raw.MadeToOrder,
	}, nil
}

func indexCategories(categories []domain.Category) map[string]domain.Category {
	index := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index
}

// MapCategory builds a home page category card
func MapCategory(raw domain.Category, assets AssetCatalog) domain.CategoryView {
	return domain.CategoryView{
		Name:         raw.Name,
		Slug:         raw.Slug,
		Image:        assets.ImageFor(raw.Slug),
		Href:         "/shop?category=" + raw.Slug,
		ProductCount: raw.ProductCount,
	}
}

// MapCategories maps category cards in source order
func MapCategories(raws []domain.Category, assets AssetCatalog) []domain.CategoryView {
	views := make([]domain.CategoryView, 0, len(raws))
	for _, raw := range raws {
		views = append(views, MapCategory(raw, assets))
	}
	return views
}

// MapBlogPost builds the view model for the post at position index.
// The image is picked cyclically from pool.
func MapBlogPost(raw domain.BlogPost, index int, pool []string) (domain.BlogPostView, error) {
	if len(pool) == 0 {
		return domain.BlogPostView{}, fmt.Errorf("%w: blog image pool is empty", domain.ErrConfig)
	}
	slot := index % len(pool)
	if slot < 0 {
		slot += len(pool)
	}

	date := FallbackPostDate
	if raw.PublishedAt != nil {
		date = raw.PublishedAt.UTC().Format(postDateLayout)
	}

	return domain.BlogPostView{
		ID:       raw.ID,
		Title:    raw.Title,
		Excerpt:  raw.Excerpt,
		Image:    pool[slot],
		Category: raw.Category,
		Author:   raw.Author,
		ReadTime: raw.ReadTime,
		Date:     date,
	}, nil
}

// MapBlogPosts maps posts in order using their position for image selection
func MapBlogPosts(raws []domain.BlogPost, pool []string) ([]domain.BlogPostView, error) {
	views := make([]domain.BlogPostView, 0, len(raws))
	for i, raw := range raws {
		view, err := MapBlogPost(raw, i, pool)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
