// Package cart accumulates add-to-cart actions as an immutable multiset keyed
// by product id. There is no remove or decrement operation.
package cart

import (
	"errors"
	"slices"

	"handmade-shop/internal/domain"

	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Line is one product in the cart with its accumulated quantity
type Line struct {
	Product  domain.ProductView `json:"product"`
	Quantity int                `json:"quantity"`
}

// Cart is an immutable value. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

// New builds a cart from stored lines, merging duplicates in order
func New(lines []Line) (Cart, error) {
	merged := make([]Line, 0, len(lines))
	positions := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			return Cart{}, ErrInvalidQuantity
		}
		if i, ok := positions[l.Product.ID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		positions[l.Product.ID] = len(merged)
		merged = append(merged, l)
	}
	return Cart{lines: merged}, nil
}

// Add returns a new cart with quantity more of product. An existing line is
// incremented; otherwise a line is appended. There is no upper bound here,
// request limits belong to the caller.
func Add(c Cart, product domain.ProductView, quantity int) (Cart, error) {
	if quantity < 1 {
		return c, ErrInvalidQuantity
	}

	lines := slices.Clone(c.lines)
	for i := range lines {
		if lines[i].Product.ID == product.ID {
			lines[i].Quantity += quantity
			return Cart{lines: lines}, nil
		}
	}

	return Cart{lines: append(lines, Line{Product: product, Quantity: quantity})}, nil
}

// AddOne adds a single unit of product
func AddOne(c Cart, product domain.ProductView) Cart {
	next, _ := Add(c, product, 1)
	return next
}

// Lines returns a copy of the cart lines in insertion order
func (c Cart) Lines() []Line {
	if c.lines == nil {
		return []Line{}
	}
	return slices.Clone(c.lines)
}

// Quantity returns the accumulated quantity for a product id
func (c Cart) Quantity(productID string) int {
	for _, l := range c.lines {
		if l.Product.ID == productID {
			return l.Quantity
		}
	}
	return 0
}

// ItemCount is the total number of units in the cart
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal sums price times quantity over all lines
func (c Cart) Subtotal() float64 {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(decimal.NewFromFloat(l.Product.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.InexactFloat64()
}

// IsEmpty reports whether nothing has been added
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
