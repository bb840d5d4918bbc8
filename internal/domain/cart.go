package domain

import "time"

// CartItem is a desired (product, quantity) pair inside a cart. It is not a
// stock reservation.
type CartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Cart is the per-customer staging area before checkout. At most one item
// per product; item quantities are always positive.
type Cart struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customerId"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewCart builds an empty cart for a customer.
func NewCart(customerID int64) *Cart {
	return &Cart{CustomerID: customerID}
}

// AddItem adds qty units of a product, merging with an existing line.
func (c *Cart) AddItem(productID int64, qty int) error {
	if qty <= 0 {
		return &InvalidQuantityError{Quantity: qty}
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += qty
			return nil
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty})
	return nil
}

// UpdateItemQuantity sets the quantity of an existing line. Zero removes the
// line; negative quantities are rejected.
func (c *Cart) UpdateItemQuantity(productID int64, qty int) error {
	if qty < 0 {
		return &InvalidQuantityError{Quantity: qty}
	}
	if qty == 0 {
		return c.RemoveItem(productID)
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			return nil
		}
	}
	return ErrProductNotFound
}

// RemoveItem drops a line from the cart.
func (c *Cart) RemoveItem(productID int64) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// Clear removes every line. The cart itself survives.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Item returns the line for a product, if present.
func (c *Cart) Item(productID int64) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// TotalQuantity is the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// BelongsTo reports whether the cart is owned by the customer.
func (c *Cart) BelongsTo(customerID int64) bool {
	return c.CustomerID == customerID
}
