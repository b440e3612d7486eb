package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"handmade-shop/internal/domain"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// BlogPostRepository defines the interface for blog post data access
type BlogPostRepository interface {
	List(ctx context.Context) ([]domain.BlogPost, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List retrieves all categories. A stored display count wins over the live product count.
func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug, COALESCE(c.display_count, COUNT(p.id))::int AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.sort_order ASC, c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.ProductCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List retrieves all products in catalog order. Prices are returned as decimal text.
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price::text, original_price::text, COALESCE(category_id, ''),
		       is_new, is_sold_out, made_to_order
		FROM products
		ORDER BY sort_order ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		var originalPrice sql.NullString
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&originalPrice,
			&product.CategoryID,
			&product.IsNew,
			&product.IsSoldOut,
			&product.MadeToOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if originalPrice.Valid {
			product.OriginalPrice = &originalPrice.String
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

type blogPostRepository struct {
	db *sql.DB
}

// NewBlogPostRepository creates a new instance of BlogPostRepository
func NewBlogPostRepository(db *sql.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

// List retrieves all blog posts in editorial order
func (r *blogPostRepository) List(ctx context.Context) ([]domain.BlogPost, error) {
	query := `
		SELECT id, title, excerpt, category, author, read_time, published_at
		FROM blog_posts
		ORDER BY sort_order ASC, published_at DESC NULLS LAST
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.BlogPost{}
	for rows.Next() {
		var post domain.BlogPost
		var publishedAt sql.NullTime
		err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Excerpt,
			&post.Category,
			&post.Author,
			&post.ReadTime,
			&publishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		if publishedAt.Valid {
			t := publishedAt.Time.In(time.UTC)
			post.PublishedAt = &t
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog posts: %w", err)
	}

	return posts, nil
}

// CatalogSource adapts the three repositories to the record source contract
type CatalogSource struct {
	categories CategoryRepository
	products   ProductRepository
	posts      BlogPostRepository
}

// NewCatalogSource creates a record source backed by PostgreSQL
func NewCatalogSource(db *sql.DB) *CatalogSource {
	return &CatalogSource{
		categories: NewCategoryRepository(db),
		products:   NewProductRepository(db),
		posts:      NewBlogPostRepository(db),
	}
}

func (s *CatalogSource) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	return categories, nil
}

func (s *CatalogSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	return products, nil
}

func (s *CatalogSource) FetchBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	return posts, nil
}
