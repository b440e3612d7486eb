package source

import (
	"context"
	"slices"
	"time"

	"handmade-shop/internal/domain"
)

type staticSource struct {
	categories []domain.Category
	products   []domain.Product
	blogPosts  []domain.BlogPost
}

// NewStaticSource returns the hand-authored storefront table. It never fails.
func NewStaticSource() Source {
	return &staticSource{
		categories: staticCategories,
		products:   staticProducts,
		blogPosts:  staticBlogPosts,
	}
}

func (s *staticSource) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	return slices.Clone(s.categories), nil
}

func (s *staticSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, len(s.products))
	for i, p := range s.products {
		if p.OriginalPrice != nil {
			v := *p.OriginalPrice
			p.OriginalPrice = &v
		}
		products[i] = p
	}
	return products, nil
}

func (s *staticSource) FetchBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	posts := make([]domain.BlogPost, len(s.blogPosts))
	for i, p := range s.blogPosts {
		if p.PublishedAt != nil {
			v := *p.PublishedAt
			p.PublishedAt = &v
		}
		posts[i] = p
	}
	return posts, nil
}

func price(s string) *string { return &s }

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var staticCategories = []domain.Category{
	{ID: "1", Name: "Amigurumi", Slug: "amigurumi", ProductCount: 12},
	{ID: "2", Name: "Blankets", Slug: "blankets", ProductCount: 8},
	{ID: "3", Name: "Accessories", Slug: "accessories", ProductCount: 15},
	{ID: "4", Name: "Home Decor", Slug: "home-decor", ProductCount: 10},
	{ID: "5", Name: "Wearables", Slug: "wearables", ProductCount: 7},
}

var staticProducts = []domain.Product{
	{ID: "1", Name: "Cute Bear Amigurumi", Price: "35.00", OriginalPrice: price("45.00"), CategoryID: "1", IsNew: true},
	{ID: "2", Name: "Cozy Baby Blanket", Price: "89.00", CategoryID: "2", MadeToOrder: true},
	{ID: "3", Name: "Market Tote Bag", Price: "45.00", CategoryID: "3", IsNew: true},
	{ID: "4", Name: "Dusty Rose Beanie", Price: "32.00", CategoryID: "5"},
	{ID: "5", Name: "Boho Coaster Set", Price: "24.00", OriginalPrice: price("30.00"), CategoryID: "4"},
	{ID: "6", Name: "Mini Bunny Amigurumi", Price: "28.00", CategoryID: "1", MadeToOrder: true},
	{ID: "7", Name: "Chunky Throw Blanket", Price: "120.00", CategoryID: "2", IsNew: true},
	{ID: "8", Name: "Crochet Plant Hanger", Price: "35.00", CategoryID: "4"},
	{ID: "9", Name: "Winter Scarf", Price: "48.00", CategoryID: "5", MadeToOrder: true},
	{ID: "10", Name: "Elephant Amigurumi", Price: "42.00", CategoryID: "1"},
	{ID: "11", Name: "Table Runner", Price: "55.00", CategoryID: "4", IsNew: true},
	{ID: "12", Name: "Beach Bag", Price: "58.00", CategoryID: "3", IsSoldOut: true},
}

var staticBlogPosts = []domain.BlogPost{
	{
		ID:          "1",
		Title:       "Getting Started with Amigurumi: A Beginner's Guide",
		Excerpt:     "Learn the basics of creating adorable stuffed animals with this comprehensive guide for beginners. We'll cover essential stitches, materials, and tips to help you create your first amigurumi project.",
		Category:    "Tutorial",
		Author:      "Sarah Miller",
		ReadTime:    "8 min read",
		PublishedAt: day(2024, time.December, 15),
	},
	{
		ID:          "2",
		Title:       "Essential Crochet Supplies for Your Craft Room",
		Excerpt:     "A curated list of must-have tools and materials for every crocheter, from beginners to advanced makers.",
		Category:    "Tips & Tricks",
		Author:      "Sarah Miller",
		ReadTime:    "5 min read",
		PublishedAt: day(2024, time.December, 10),
	},
	{
		ID:          "3",
		Title:       "How to Choose the Right Yarn for Your Project",
		Excerpt:     "Understanding yarn weights, fibers, and textures to make the perfect choice for your next creation.",
		Category:    "Guide",
		Author:      "Sarah Miller",
		ReadTime:    "6 min read",
		PublishedAt: day(2024, time.December, 5),
	},
	{
		ID:          "4",
		Title:       "Creating Your First Granny Square Blanket",
		Excerpt:     "A step-by-step tutorial on making the classic granny square and joining them into a beautiful blanket.",
		Category:    "Tutorial",
		Author:      "Sarah Miller",
		ReadTime:    "12 min read",
		PublishedAt: day(2024, time.November, 28),
	},
	{
		ID:          "5",
		Title:       "Crochet Color Theory: Combining Colors Like a Pro",
		Excerpt:     "Learn how to choose color palettes that make your projects pop with these design principles.",
		Category:    "Guide",
		Author:      "Sarah Miller",
		ReadTime:    "7 min read",
		PublishedAt: day(2024, time.November, 20),
	},
	{
		ID:          "6",
		Title:       "10 Cozy Crochet Project Ideas for Winter",
		Excerpt:     "Get inspired with these warm and wonderful project ideas perfect for the cold months ahead.",
		Category:    "Inspiration",
		Author:      "Sarah Miller",
		ReadTime:    "4 min read",
		PublishedAt: day(2024, time.November, 15),
	},
}
