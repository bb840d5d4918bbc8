package domain

import (
	"fmt"
	"strings"
	"time"
)

// Product is the catalog entity owning the stock ledger. Stock moves only
// through ReduceStock and RestoreStock; cart contents never touch it.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         Money     `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	IsVisible     bool      `json:"isVisible"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewProduct validates and builds a new visible product.
func NewProduct(name, description string, price Money, stockQuantity int) (*Product, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, fmt.Errorf("%w: product name must be at least 2 characters", ErrInvalidInput)
	}
	if price.IsZero() {
		return nil, fmt.Errorf("%w: product price must be positive", ErrInvalidInput)
	}
	if stockQuantity < 0 {
		return nil, &InvalidQuantityError{Quantity: stockQuantity}
	}
	return &Product{
		Name:          name,
		Description:   strings.TrimSpace(description),
		Price:         price,
		StockQuantity: stockQuantity,
		IsVisible:     true,
	}, nil
}

// HasSufficientStock reports whether qty units can be reserved.
func (p *Product) HasSufficientStock(qty int) bool {
	return qty <= p.StockQuantity
}

// ReduceStock decrements the available quantity, failing with
// InsufficientStockError when the product cannot cover the request. The
// quantity is left unchanged on failure.
func (p *Product) ReduceStock(qty int) error {
	if qty <= 0 {
		return &InvalidQuantityError{Quantity: qty}
	}
	if p.StockQuantity < qty {
		return &InsufficientStockError{ProductID: p.ID, Requested: qty, Available: p.StockQuantity}
	}
	p.StockQuantity -= qty
	return nil
}

// RestoreStock increments the available quantity, reversing a prior
// reduction. No upper bound is enforced.
func (p *Product) RestoreStock(qty int) error {
	if qty <= 0 {
		return &InvalidQuantityError{Quantity: qty}
	}
	p.StockQuantity += qty
	return nil
}

// IsInStock reports whether any units remain.
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// IsAvailableForPurchase reports whether the product is visible and in stock.
func (p *Product) IsAvailableForPurchase() bool {
	return p.IsVisible && p.IsInStock()
}

// Hide removes the product from the catalog without deleting it.
func (p *Product) Hide() {
	p.IsVisible = false
}

// Show returns a hidden product to the catalog.
func (p *Product) Show() {
	p.IsVisible = true
}

// Subtotal is the price of qty units of this product.
func (p *Product) Subtotal(qty int) (Money, error) {
	return p.Price.Multiply(qty)
}
