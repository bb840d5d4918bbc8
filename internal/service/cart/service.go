package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	productrepo "storefront/internal/repository/product"
)

// Service handles cart mutations. Cart quantities are desired amounts only;
// the authoritative stock check happens again at order placement.
type Service struct {
	repo     cartRepo
	products productRepo
	logger   *log.Logger
}

type cartRepo interface {
	GetByCustomer(ctx context.Context, customerID int64) (*domain.Cart, error)
	GetOrCreate(ctx context.Context, customerID int64) (*domain.Cart, error)
	UpsertItem(ctx context.Context, cartID, productID int64, qty int) error
	UpdateItemQuantity(ctx context.Context, cartID, productID int64, qty int) error
	RemoveItem(ctx context.Context, cartID, productID int64) error
	Clear(ctx context.Context, customerID int64) error
}

type productRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// New builds a cart service.
func New(repo cartrepo.Repository, products productrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, products: products, logger: logger}
}

// View returns the customer's cart, or an empty one if none exists yet.
// Carts are created lazily on first add.
func (s *Service) View(ctx context.Context, customerID int64) (*domain.Cart, error) {
	cart, err := s.repo.GetByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return domain.NewCart(customerID), nil
		}
		return nil, err
	}
	return cart, nil
}

// Add puts qty units of a product into the cart. The product must exist and
// be visible; the combined desired quantity is checked against current stock
// as a courtesy to the customer, not as a reservation.
func (s *Service) Add(ctx context.Context, customerID, productID int64, qty int) (*domain.Cart, error) {
	if qty <= 0 {
		return nil, &domain.InvalidQuantityError{Quantity: qty}
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsVisible {
		return nil, fmt.Errorf("product %d: %w", productID, domain.ErrProductUnavailable)
	}

	cart, err := s.repo.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	desired := qty
	if existing, ok := cart.Item(productID); ok {
		desired += existing.Quantity
	}
	if !product.HasSufficientStock(desired) {
		return nil, &domain.InsufficientStockError{ProductID: productID, Requested: desired, Available: product.StockQuantity}
	}

	if err := s.repo.UpsertItem(ctx, cart.ID, productID, qty); err != nil {
		return nil, err
	}
	s.logger.Printf("cart: customer=%d added product=%d qty=%d", customerID, productID, qty)
	return s.repo.GetByCustomer(ctx, customerID)
}

// UpdateQuantity sets the desired quantity of a cart line. Zero removes the
// line, matching the aggregate's invariant that quantities stay positive.
func (s *Service) UpdateQuantity(ctx context.Context, customerID, productID int64, qty int) (*domain.Cart, error) {
	if qty < 0 {
		return nil, &domain.InvalidQuantityError{Quantity: qty}
	}
	cart, err := s.repo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if qty == 0 {
		if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
			return nil, err
		}
		return s.repo.GetByCustomer(ctx, customerID)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.HasSufficientStock(qty) {
		return nil, &domain.InsufficientStockError{ProductID: productID, Requested: qty, Available: product.StockQuantity}
	}
	if err := s.repo.UpdateItemQuantity(ctx, cart.ID, productID, qty); err != nil {
		return nil, err
	}
	return s.repo.GetByCustomer(ctx, customerID)
}

// Remove drops a line from the cart.
func (s *Service) Remove(ctx context.Context, customerID, productID int64) (*domain.Cart, error) {
	cart, err := s.repo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetByCustomer(ctx, customerID)
}

// Clear empties the customer's cart.
func (s *Service) Clear(ctx context.Context, customerID int64) error {
	return s.repo.Clear(ctx, customerID)
}
