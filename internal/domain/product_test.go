package domain

import (
	"errors"
	"testing"
)

func testProduct(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := NewProduct("Ceramic Mug", "Plain white mug", mustMoney(t, "100", CurrencyVND), stock)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	p.ID = 1
	return p
}

func TestNewProductValidation(t *testing.T) {
	price := mustMoney(t, "100", CurrencyVND)
	if _, err := NewProduct("x", "desc", price, 1); err == nil {
		t.Fatal("expected name validation error")
	}
	if _, err := NewProduct("Mug", "desc", ZeroMoney(CurrencyVND), 1); err == nil {
		t.Fatal("expected price validation error")
	}
	if _, err := NewProduct("Mug", "desc", price, -1); err == nil {
		t.Fatal("expected stock validation error")
	}
}

func TestReduceStock(t *testing.T) {
	p := testProduct(t, 5)
	if err := p.ReduceStock(3); err != nil {
		t.Fatalf("ReduceStock: %v", err)
	}
	if p.StockQuantity != 2 {
		t.Fatalf("expected stock 2, got %d", p.StockQuantity)
	}
}

func TestReduceStockInsufficient(t *testing.T) {
	p := testProduct(t, 2)
	err := p.ReduceStock(3)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.ProductID != 1 || insufficient.Requested != 3 || insufficient.Available != 2 {
		t.Fatalf("unexpected error detail %+v", insufficient)
	}
	// stock untouched on failure
	if p.StockQuantity != 2 {
		t.Fatalf("stock changed on failed reduce: %d", p.StockQuantity)
	}
}

func TestReduceStockRejectsNonPositive(t *testing.T) {
	p := testProduct(t, 5)
	var invalid *InvalidQuantityError
	if err := p.ReduceStock(0); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidQuantityError, got %v", err)
	}
}

func TestRestoreStock(t *testing.T) {
	p := testProduct(t, 0)
	if err := p.RestoreStock(4); err != nil {
		t.Fatalf("RestoreStock: %v", err)
	}
	if p.StockQuantity != 4 {
		t.Fatalf("expected stock 4, got %d", p.StockQuantity)
	}
}

func TestReduceRestoreNeverNegative(t *testing.T) {
	p := testProduct(t, 3)
	ops := []int{2, 1, 5, 1}
	for _, q := range ops {
		before := p.StockQuantity
		if err := p.ReduceStock(q); err != nil {
			if p.StockQuantity != before {
				t.Fatalf("failed reduce changed stock: %d -> %d", before, p.StockQuantity)
			}
		}
		if p.StockQuantity < 0 {
			t.Fatalf("stock went negative: %d", p.StockQuantity)
		}
		_ = p.RestoreStock(1)
	}
}

func TestIsAvailableForPurchase(t *testing.T) {
	p := testProduct(t, 1)
	if !p.IsAvailableForPurchase() {
		t.Fatal("expected visible in-stock product to be available")
	}
	p.Hide()
	if p.IsAvailableForPurchase() {
		t.Fatal("hidden product must not be available")
	}
	p.Show()
	if err := p.ReduceStock(1); err != nil {
		t.Fatalf("ReduceStock: %v", err)
	}
	if p.IsAvailableForPurchase() {
		t.Fatal("out-of-stock product must not be available")
	}
}

func TestSubtotal(t *testing.T) {
	p := testProduct(t, 5)
	total, err := p.Subtotal(3)
	if err != nil {
		t.Fatalf("Subtotal: %v", err)
	}
	if !total.Equal(mustMoney(t, "300", CurrencyVND)) {
		t.Fatalf("unexpected subtotal %s", total)
	}
}
