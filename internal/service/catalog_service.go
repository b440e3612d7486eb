package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"handmade-shop/internal/catalog"
	"handmade-shop/internal/domain"
	"handmade-shop/internal/source"

	"go.uber.org/zap"
)

const (
	HomeFeaturedProducts = 4
	HomePostLimit        = 3
	RelatedProductLimit  = 4
	DefaultPageSize      = 12
)

// SnapshotProvider exposes the latest complete set of raw records
type SnapshotProvider interface {
	Current() (*source.Snapshot, bool)
}

// ShopRequest is the filter state of the shop page
type ShopRequest struct {
	Category string
	Search   string
	Sort     catalog.SortKey
	Page     int
	PageSize int
}

// ShopPage is the rendered shop grid
type ShopPage struct {
	Title      string               `json:"title"`
	Category   string               `json:"category"`
	Search     string               `json:"search"`
	Sort       catalog.SortKey      `json:"sort"`
	Products   []domain.ProductView `json:"products"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	Total      int                  `json:"total"`
	TotalPages int                  `json:"totalPages"`
}

// HomePage holds the sections of the landing page
type HomePage struct {
	Categories       []domain.CategoryView `json:"categories"`
	FeaturedProducts []domain.ProductView  `json:"featuredProducts"`
	FeaturedPost     *domain.BlogPostView  `json:"featuredPost"`
	Posts            []domain.BlogPostView `json:"posts"`
}

// ProductDetail is a product with related items from its category
type ProductDetail struct {
	Product domain.ProductView   `json:"product"`
	Related []domain.ProductView `json:"related"`
}

// CatalogService defines the interface for catalog pages and raw records
type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context) ([]domain.Product, error)
	BlogPosts(ctx context.Context) ([]domain.BlogPost, error)

	Home(ctx context.Context) (*HomePage, error)
	Shop(ctx context.Context, req ShopRequest) (*ShopPage, error)
	ProductDetail(ctx context.Context, id string) (*ProductDetail, error)
	Blog(ctx context.Context, q catalog.BlogQuery) (*catalog.BlogResult, error)
	Product(ctx context.Context, id string) (domain.ProductView, error)
}

type catalogService struct {
	snapshots SnapshotProvider
	assets    catalog.AssetCatalog
	logger    *zap.Logger

	// generation whose rejected records were last reported
	reported atomic.Uint64
}

// NewCatalogService creates a new instance of CatalogService. The asset table
// is checked up front so an empty image pool fails at startup.
func NewCatalogService(snapshots SnapshotProvider, assets catalog.AssetCatalog, logger *zap.Logger) (CatalogService, error) {
	if err := assets.Validate(); err != nil {
		return nil, err
	}
	return &catalogService{
		snapshots: snapshots,
		assets:    assets,
		logger:    logger,
	}, nil
}

func (s *catalogService) snapshot() (*source.Snapshot, error) {
	snap, ok := s.snapshots.Current()
	if !ok {
		return nil, fmt.Errorf("%w: catalog has not been loaded", domain.ErrSourceUnavailable)
	}
	return snap, nil
}

// productViews rebuilds the product view models for the snapshot.
// Records with bad prices are dropped and reported once per snapshot.
func (s *catalogService) productViews(snap *source.Snapshot) []domain.ProductView {
	views, err := catalog.MapProducts(snap.Products, snap.Categories, s.assets)
	if err != nil && s.reported.Swap(snap.Generation) != snap.Generation {
		s.logger.Warn("Rejected products with invalid prices",
			zap.Uint64("generation", snap.Generation),
			zap.Error(err),
		)
	}
	return views
}

func (s *catalogService) postViews(snap *source.Snapshot) ([]domain.BlogPostView, error) {
	return catalog.MapBlogPosts(snap.BlogPosts, s.assets.BlogPool())
}

func (s *catalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

func (s *catalogService) Products(ctx context.Context) ([]domain.Product, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Products, nil
}

func (s *catalogService) BlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.BlogPosts, nil
}

// Home assembles the landing page sections
func (s *catalogService) Home(ctx context.Context) (*HomePage, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	posts, err := s.postViews(snap)
	if err != nil {
		return nil, err
	}
	if len(posts) > HomePostLimit {
		posts = posts[:HomePostLimit]
	}

	page := &HomePage{
		Categories:       catalog.MapCategories(snap.Categories, s.assets),
		FeaturedProducts: catalog.Featured(s.productViews(snap), HomeFeaturedProducts),
		Posts:            []domain.BlogPostView{},
	}
	if len(posts) > 0 {
		featured := posts[0]
		page.FeaturedPost = &featured
		page.Posts = posts[1:]
	}

	return page, nil
}

// Shop filters, sorts and paginates the product grid
func (s *catalogService) Shop(ctx context.Context, req ShopRequest) (*ShopPage, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	if req.Category == "" {
		req.Category = catalog.AllCategories
	}
	if req.Sort == "" {
		req.Sort = catalog.SortFeatured
	}
	if req.PageSize == 0 {
		req.PageSize = DefaultPageSize
	}

	results := catalog.Query(s.productViews(snap), catalog.ProductQuery{
		Category: req.Category,
		Search:   req.Search,
		Sort:     req.Sort,
	})
	page := catalog.Paginate(results, req.Page, req.PageSize)

	return &ShopPage{
		Title:      catalog.FormatCategoryName(req.Category),
		Category:   req.Category,
		Search:     req.Search,
		Sort:       req.Sort,
		Products:   page.Items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}, nil
}

// ProductDetail returns a product with related items
func (s *catalogService) ProductDetail(ctx context.Context, id string) (*ProductDetail, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	products := s.productViews(snap)
	product, ok := catalog.FindProduct(products, id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	return &ProductDetail{
		Product: product,
		Related: catalog.Related(products, product, RelatedProductLimit),
	}, nil
}

// Blog filters posts and fills the featured slot
func (s *catalogService) Blog(ctx context.Context, q catalog.BlogQuery) (*catalog.BlogResult, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	posts, err := s.postViews(snap)
	if err != nil {
		return nil, err
	}

	result := catalog.QueryBlog(posts, q)
	return &result, nil
}

// Product returns a single product view
func (s *catalogService) Product(ctx context.Context, id string) (domain.ProductView, error) {
	snap, err := s.snapshot()
	if err != nil {
		return domain.ProductView{}, err
	}

	product, ok := catalog.FindProduct(s.productViews(snap), id)
	if !ok {
		return domain.ProductView{}, domain.ErrProductNotFound
	}
	return product, nil
}
