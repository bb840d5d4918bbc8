package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipping  OrderStatus = "SHIPPING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo implements the status state machine:
// PENDING -> SHIPPING or CANCELLED, SHIPPING -> COMPLETED. COMPLETED and
// CANCELLED are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusShipping || next == OrderStatusCancelled
	case OrderStatusShipping:
		return next == OrderStatusCompleted
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ParseOrderStatus validates a stored status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case OrderStatusPending, OrderStatusShipping, OrderStatusCompleted, OrderStatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, raw)
	}
}

// PaymentMethod is a label only; no processor integration sits behind it.
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "COD"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
)

// ParsePaymentMethod validates a caller-supplied payment method label.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(raw))); m {
	case PaymentMethodCOD, PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCreditCard:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, raw)
	}
}

// OrderItem is an immutable snapshot of a product at order time. Name and
// unit price are captured so later product changes do not alter the order.
type OrderItem struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unitPrice"`
}

// NewOrderItem validates and builds an order line snapshot.
func NewOrderItem(productID int64, productName string, quantity int, unitPrice Money) (OrderItem, error) {
	if productName == "" {
		return OrderItem{}, fmt.Errorf("%w: product name cannot be empty", ErrInvalidInput)
	}
	if quantity <= 0 {
		return OrderItem{}, &InvalidQuantityError{Quantity: quantity}
	}
	if unitPrice.IsZero() {
		return OrderItem{}, fmt.Errorf("%w: unit price must be positive", ErrInvalidInput)
	}
	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}

// Subtotal is quantity times the snapshotted unit price.
func (i OrderItem) Subtotal() (Money, error) {
	return i.UnitPrice.Multiply(i.Quantity)
}

// Order is the immutable record of a checkout. Items and total never change
// after construction; only the status moves, through the transition methods.
type Order struct {
	ID              int64         `json:"id"`
	CustomerID      int64         `json:"customerId"`
	Items           []OrderItem   `json:"items"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ShippingAddress string        `json:"shippingAddress"`
	PhoneNumber     string        `json:"phoneNumber"`
	Notes           string        `json:"notes,omitempty"`
	Status          OrderStatus   `json:"status"`
	TotalAmount     Money         `json:"totalAmount"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// NewOrder builds a PENDING order from item snapshots and computes the total
// once. All items must share one currency.
func NewOrder(customerID int64, items []OrderItem, payment PaymentMethod, shippingAddress, phoneNumber, notes string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	shippingAddress = strings.TrimSpace(shippingAddress)
	phoneNumber = strings.TrimSpace(phoneNumber)
	if len(shippingAddress) < 10 {
		return nil, fmt.Errorf("%w: shipping address must be at least 10 characters", ErrInvalidInput)
	}
	if len(phoneNumber) < 10 {
		return nil, fmt.Errorf("%w: phone number must be at least 10 characters", ErrInvalidInput)
	}

	total := ZeroMoney(items[0].UnitPrice.Currency())
	for _, item := range items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return nil, err
		}
		total, err = total.Add(subtotal)
		if err != nil {
			return nil, err
		}
	}

	return &Order{
		CustomerID:      customerID,
		Items:           append([]OrderItem(nil), items...),
		PaymentMethod:   payment,
		ShippingAddress: shippingAddress,
		PhoneNumber:     phoneNumber,
		Notes:           strings.TrimSpace(notes),
		Status:          OrderStatusPending,
		TotalAmount:     total,
	}, nil
}

func (o *Order) transition(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return &InvalidOrderStatusTransitionError{From: o.Status, To: next}
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Ship moves a PENDING order to SHIPPING.
func (o *Order) Ship() error {
	return o.transition(OrderStatusShipping)
}

// Complete moves a SHIPPING order to COMPLETED.
func (o *Order) Complete() error {
	return o.transition(OrderStatusCompleted)
}

// Cancel moves a PENDING order to CANCELLED. Shipped orders cannot be
// cancelled.
func (o *Order) Cancel() error {
	return o.transition(OrderStatusCancelled)
}

// CanBeCancelled reports whether cancellation is still allowed.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending
}

// CanBeModified reports whether the order is still mutable.
func (o *Order) CanBeModified() bool {
	return o.Status == OrderStatusPending
}

// BelongsTo reports whether the order is owned by the customer.
func (o *Order) BelongsTo(customerID int64) bool {
	return o.CustomerID == customerID
}

// TotalQuantity is the sum of all item quantities.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
