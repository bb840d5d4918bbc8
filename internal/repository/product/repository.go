package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the persistence port for products and their stock ledger.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListVisible(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetByIDForUpdate locks the product row for the duration of the
	// enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	SetVisibility(ctx context.Context, id int64, visible bool) error
	// ReduceStock decrements available quantity, re-validating availability
	// at write time.
	ReduceStock(ctx context.Context, id int64, qty int) error
	RestoreStock(ctx context.Context, id int64, qty int) error
}
