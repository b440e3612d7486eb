package catalog

import (
	"fmt"
	"strings"

	"handmade-shop/internal/domain"
)

// DefaultAssetBaseURL is where the storefront serves generated product imagery
const DefaultAssetBaseURL = "/assets/generated_images"

// AssetCatalog resolves image assets for categories, products and blog posts
type AssetCatalog struct {
	BaseURL        string
	CategoryImages map[string]string // category slug -> file name
	DefaultImage   string
	BlogImages     []string
}

// DefaultAssets returns the built-in asset table rooted at baseURL
func DefaultAssets(baseURL string) AssetCatalog {
	if baseURL == "" {
		baseURL = DefaultAssetBaseURL
	}

	return AssetCatalog{
		BaseURL: baseURL,
		CategoryImages: map[string]string{
			"amigurumi":   "amigurumi_bear_product.png",
			"blankets":    "crochet_blanket_product.png",
			"accessories": "crochet_tote_bag.png",
			"wearables":   "crochet_beanie_hat.png",
			"home-decor":  "crochet_coasters_set.png",
		},
		DefaultImage: "amigurumi_bear_product.png",
		BlogImages: []string{
			"crochet_tutorial_blog.png",
			"crochet_supplies_flatlay.png",
			"crochet_blanket_product.png",
		},
	}
}

// Validate checks the startup preconditions of the asset table
func (a AssetCatalog) Validate() error {
	if strings.TrimSpace(a.DefaultImage) == "" {
		return fmt.Errorf("%w: default image is not set", domain.ErrConfig)
	}
	if len(a.BlogImages) == 0 {
		return fmt.Errorf("%w: blog image pool is empty", domain.ErrConfig)
	}
	return nil
}

// ImageFor returns the asset for a category slug, falling back to the default image
func (a AssetCatalog) ImageFor(slug string) string {
	if file, ok := a.CategoryImages[slug]; ok {
		return a.URL(file)
	}
	return a.URL(a.DefaultImage)
}

// BlogPool returns the blog image pool as full asset references
func (a AssetCatalog) BlogPool() []string {
	pool := make([]string, 0, len(a.BlogImages))
	for _, file := range a.BlogImages {
		pool = append(pool, a.URL(file))
	}
	return pool
}

// URL joins a file name onto the asset base URL
func (a AssetCatalog) URL(file string) string {
	if a.BaseURL == "" {
		return file
	}
	return strings.TrimRight(a.BaseURL, "/") + "/" + file
}
