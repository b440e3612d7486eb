package domain

import "time"

// Category represents a product category as stored by a record source
type Category struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Slug         string `json:"slug" db:"slug"`
	ProductCount int    `json:"productCount" db:"product_count"`
}

// Product represents a raw product record. Prices are decimal strings.
type Product struct {
	ID            string  `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Price         string  `json:"price" db:"price"`
	OriginalPrice *string `json:"originalPrice,omitempty" db:"original_price"`
	CategoryID    string  `json:"categoryId" db:"category_id"`
	IsNew         bool    `json:"isNew" db:"is_new"`
	IsSoldOut     bool    `json:"isSoldOut" db:"is_sold_out"`
	MadeToOrder   bool    `json:"madeToOrder" db:"made_to_order"`
}

// ProductView is the render-ready product derived from a raw Product
type ProductView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	IsNew         bool     `json:"isNew"`
	IsSoldOut     bool     `json:"isSoldOut"`
	MadeToOrder   bool     `json:"madeToOrder"`
}

// CategoryView is a category card for the home page
type CategoryView struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Image        string `json:"image"`
	Href         string `json:"href"`
	ProductCount int    `json:"productCount"`
}

// BlogPost represents a raw blog post record
type BlogPost struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Excerpt     string     `json:"excerpt" db:"excerpt"`
	Category    string     `json:"category" db:"category"`
	Author      string     `json:"author" db:"author"`
	ReadTime    string     `json:"readTime" db:"read_time"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at"`
}

// BlogPostView is a blog post with its resolved image and display date
type BlogPostView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Author   string `json:"author"`
	ReadTime string `json:"readTime"`
	Date     string `json:"date"`
}
