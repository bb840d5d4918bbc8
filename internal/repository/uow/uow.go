package uow

import (
	"context"

	cartrepo "storefront/internal/repository/cart"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
)

// Repos bundles the repositories bound to one transaction.
type Repos struct {
	Products productrepo.Repository
	Carts    cartrepo.Repository
	Orders   orderrepo.Repository
}

// UnitOfWork runs a function against transaction-bound repositories. The
// transaction commits when fn returns nil and rolls back otherwise, so a
// failure leaves no partial stock reduction, order row or cart change.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
