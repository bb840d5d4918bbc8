package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount indicates a money amount that is negative or carries
	// an unsupported currency.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidInput indicates a field failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProductNotFound indicates the referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound indicates the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrCartNotFound indicates no cart exists for the customer.
	ErrCartNotFound = errors.New("cart not found")

	// ErrEmptyCart indicates a checkout was attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrEmptyOrder indicates an order was constructed without items.
	ErrEmptyOrder = errors.New("order must have at least one item")

	// ErrProductUnavailable indicates the product is hidden from the catalog.
	ErrProductUnavailable = errors.New("product is not available")

	// ErrUnauthorized indicates the caller does not own the resource.
	ErrUnauthorized = errors.New("unauthorized access")

	// ErrConcurrentModification indicates the transaction lost a race
	// (serialization failure or deadlock) and may be retried.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// CurrencyMismatchError is returned when two Money values of different
// currencies are combined.
type CurrencyMismatchError struct {
	Left  Currency
	Right Currency
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %s vs %s", e.Left, e.Right)
}

// InvalidQuantityError is returned when a quantity is zero or negative where
// a positive value is required.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity: %d", e.Quantity)
}

// InsufficientStockError is returned when a stock reduction exceeds the
// available quantity.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %d: requested %d, but only %d available", e.ProductID, e.Requested, e.Available)
}

// InvalidOrderStatusTransitionError is returned when an order status change
// is not allowed by the state machine.
type InvalidOrderStatusTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidOrderStatusTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: %s -> %s", e.From, e.To)
}
