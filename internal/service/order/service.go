package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	"storefront/internal/repository/uow"
)

// maxAttempts bounds internal retries on concurrency conflicts.
const maxAttempts = 3

// Actor identifies the caller of an order operation. Customer actors may
// only touch their own orders; admin actors bypass the ownership check.
type Actor struct {
	CustomerID int64
	Admin      bool
}

// PlaceInput carries the checkout form for order placement.
type PlaceInput struct {
	CustomerID      int64
	ShippingAddress string
	PhoneNumber     string
	PaymentMethod   string
	Notes           string
}

// Service orchestrates the order lifecycle: placement from a cart,
// cancellation with stock restoration, and the admin ship/complete
// transitions. Placement and cancellation each run in one unit of work.
type Service struct {
	uow    uow.UnitOfWork
	orders orderReader
	logger *log.Logger
}

type orderReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// New builds an order service. The reader is used for queries outside any
// transaction; mutations go through the unit of work.
func New(u uow.UnitOfWork, orders orderrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{uow: u, orders: orders, logger: logger}
}

// Place converts the customer's cart into a PENDING order: it locks and
// validates every product in cart order, snapshots name and price, reduces
// stock, persists the order and clears the cart, all in one transaction.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*domain.Order, error) {
	payment, err := domain.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var placed *domain.Order
	err = s.withRetry(ctx, "place", func(ctx context.Context, r uow.Repos) error {
		cart, err := r.Carts.GetByCustomer(ctx, in.CustomerID)
		if err != nil {
			if errors.Is(err, domain.ErrCartNotFound) {
				return domain.ErrEmptyCart
			}
			return err
		}
		if cart.IsEmpty() {
			return domain.ErrEmptyCart
		}

		items := make([]domain.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			// Row lock closes the gap between this check and the decrement.
			product, err := r.Products.GetByIDForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsVisible {
				return fmt.Errorf("product %d: %w", product.ID, domain.ErrProductUnavailable)
			}
			if !product.HasSufficientStock(line.Quantity) {
				return &domain.InsufficientStockError{
					ProductID: product.ID,
					Requested: line.Quantity,
					Available: product.StockQuantity,
				}
			}
			item, err := domain.NewOrderItem(product.ID, product.Name, line.Quantity, product.Price)
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		order, err := domain.NewOrder(in.CustomerID, items, payment, in.ShippingAddress, in.PhoneNumber, in.Notes)
		if err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := r.Products.ReduceStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := r.Carts.Clear(ctx, in.CustomerID); err != nil {
			return err
		}
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order: placed id=%d customer=%d total=%s", placed.ID, placed.CustomerID, placed.TotalAmount)
	return placed, nil
}

// Cancel moves a PENDING order to CANCELLED and restores the stock deducted
// at placement. The order row is locked so exactly one of two concurrent
// cancellations observes PENDING; the other fails on the status transition.
// Stock restoration is best-effort per product: a product deleted since the
// order was placed is skipped, not an error.
func (s *Service) Cancel(ctx context.Context, orderID int64, actor Actor) (*domain.Order, error) {
	var cancelled *domain.Order
	err := s.withRetry(ctx, "cancel", func(ctx context.Context, r uow.Repos) error {
		order, err := r.Orders.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !actor.Admin && !order.BelongsTo(actor.CustomerID) {
			return fmt.Errorf("order %d: %w", orderID, domain.ErrUnauthorized)
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := r.Products.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, domain.ErrProductNotFound) {
					s.logger.Printf("order: cancel id=%d skipping restore for deleted product=%d", orderID, item.ProductID)
					continue
				}
				return err
			}
		}
		if err := r.Orders.UpdateStatus(ctx, order); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order: cancelled id=%d", cancelled.ID)
	return cancelled, nil
}

// Ship moves a PENDING order to SHIPPING. Admin operation.
func (s *Service) Ship(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.updateStatus(ctx, orderID, (*domain.Order).Ship)
}

// Complete moves a SHIPPING order to COMPLETED. Admin operation.
func (s *Service) Complete(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.updateStatus(ctx, orderID, (*domain.Order).Complete)
}

func (s *Service) updateStatus(ctx context.Context, orderID int64, transition func(*domain.Order) error) (*domain.Order, error) {
	var updated *domain.Order
	err := s.withRetry(ctx, "status", func(ctx context.Context, r uow.Repos) error {
		order, err := r.Orders.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := transition(order); err != nil {
			return err
		}
		if err := r.Orders.UpdateStatus(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("order: id=%d status=%s", updated.ID, updated.Status)
	return updated, nil
}

// Get returns one order, enforcing ownership for customer actors.
func (s *Service) Get(ctx context.Context, orderID int64, actor Actor) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && !order.BelongsTo(actor.CustomerID) {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrUnauthorized)
	}
	return order, nil
}

// ListForCustomer returns the customer's own orders, newest first.
func (s *Service) ListForCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// List returns all orders. Admin operation.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *Service) withRetry(ctx context.Context, op string, fn func(ctx context.Context, r uow.Repos) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = s.uow.Within(ctx, fn)
		if err == nil || !errors.Is(err, domain.ErrConcurrentModification) {
			return err
		}
		s.logger.Printf("order: %s conflict, attempt %d/%d", op, attempt, maxAttempts)
	}
	return err
}
