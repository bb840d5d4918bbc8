package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO currency code supported by the store.
type Currency string

const (
	CurrencyVND Currency = "VND"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether the currency is one the store supports.
func (c Currency) Valid() bool {
	return c == CurrencyVND || c == CurrencyUSD
}

// Money is an immutable monetary value. Every operation returns a new value
// and never mutates the receiver.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney builds a Money value. The amount must not be negative and the
// currency must be supported.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("amount %s: %w", amount, ErrInvalidAmount)
	}
	if !currency.Valid() {
		return Money{}, fmt.Errorf("currency %q: %w", currency, ErrInvalidAmount)
	}
	return Money{amount: amount, currency: currency}, nil
}

// ParseMoney builds a Money value from a decimal string, as stored in the
// database or received on the wire.
func ParseMoney(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("amount %q: %w", amount, ErrInvalidAmount)
	}
	return NewMoney(d, currency)
}

// ZeroMoney returns the zero value in the given currency.
func ZeroMoney(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, &CurrencyMismatchError{Left: m.currency, Right: other.currency}
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of two Money values of the same currency.
// The result must not be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, &CurrencyMismatchError{Left: m.currency, Right: other.currency}
	}
	if m.amount.LessThan(other.amount) {
		return Money{}, fmt.Errorf("subtracting %s from %s: %w", other.amount, m.amount, ErrInvalidAmount)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Multiply scales the amount by a positive integer quantity.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity <= 0 {
		return Money{}, &InvalidQuantityError{Quantity: quantity}
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), currency: m.currency}, nil
}

// Equal reports value equality on (amount, currency).
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount, m.currency)
}

type moneyJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

// MarshalJSON encodes the amount as a decimal string to avoid float rounding.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.String(), Currency: m.currency})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
