package cart

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the persistence port for carts. Carts are keyed by customer:
// one cart per customer, created lazily on first add.
type Repository interface {
	GetByCustomer(ctx context.Context, customerID int64) (*domain.Cart, error)
	GetOrCreate(ctx context.Context, customerID int64) (*domain.Cart, error)
	// UpsertItem adds qty to an existing line or inserts a new one.
	UpsertItem(ctx context.Context, cartID, productID int64, qty int) error
	// UpdateItemQuantity sets a line's quantity; zero removes the line.
	UpdateItemQuantity(ctx context.Context, cartID, productID int64, qty int) error
	RemoveItem(ctx context.Context, cartID, productID int64) error
	// Clear removes every line from the customer's cart, keeping the cart row.
	Clear(ctx context.Context, customerID int64) error
}
