package order

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the persistence port for orders and their item snapshots.
type Repository interface {
	// Create persists the order and its items, assigning the order id.
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetByIDForUpdate locks the order row so concurrent status changes
	// serialize within the enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	// UpdateStatus persists a status already validated by the domain
	// transition methods.
	UpdateStatus(ctx context.Context, o *domain.Order) error
}
