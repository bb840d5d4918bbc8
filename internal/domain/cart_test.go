package domain

import (
	"errors"
	"testing"
)

func TestCartAddItemMergesQuantity(t *testing.T) {
	c := NewCart(7)
	if err := c.AddItem(1, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := c.AddItem(1, 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Items[0].Quantity)
	}
}

func TestCartAddItemRejectsNonPositive(t *testing.T) {
	c := NewCart(7)
	var invalid *InvalidQuantityError
	if err := c.AddItem(1, 0); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidQuantityError, got %v", err)
	}
}

func TestCartPreservesInsertionOrder(t *testing.T) {
	c := NewCart(7)
	for _, id := range []int64{3, 1, 2} {
		if err := c.AddItem(id, 1); err != nil {
			t.Fatalf("AddItem(%d): %v", id, err)
		}
	}
	want := []int64{3, 1, 2}
	for i, item := range c.Items {
		if item.ProductID != want[i] {
			t.Fatalf("position %d: expected product %d, got %d", i, want[i], item.ProductID)
		}
	}
}

func TestCartUpdateItemQuantity(t *testing.T) {
	c := NewCart(7)
	_ = c.AddItem(1, 2)
	if err := c.UpdateItemQuantity(1, 4); err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	item, ok := c.Item(1)
	if !ok || item.Quantity != 4 {
		t.Fatalf("unexpected item %+v ok=%v", item, ok)
	}
}

func TestCartUpdateToZeroRemovesItem(t *testing.T) {
	c := NewCart(7)
	_ = c.AddItem(1, 2)
	if err := c.UpdateItemQuantity(1, 0); err != nil {
		t.Fatalf("UpdateItemQuantity: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", c.Items)
	}
}

func TestCartUpdateMissingItem(t *testing.T) {
	c := NewCart(7)
	if err := c.UpdateItemQuantity(42, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartRemoveItem(t *testing.T) {
	c := NewCart(7)
	_ = c.AddItem(1, 2)
	_ = c.AddItem(2, 1)
	if err := c.RemoveItem(1); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok := c.Item(1); ok {
		t.Fatal("item 1 still present")
	}
	if err := c.RemoveItem(1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartClearAndTotals(t *testing.T) {
	c := NewCart(7)
	_ = c.AddItem(1, 2)
	_ = c.AddItem(2, 3)
	if c.TotalQuantity() != 5 {
		t.Fatalf("expected total quantity 5, got %d", c.TotalQuantity())
	}
	c.Clear()
	if !c.IsEmpty() || c.TotalQuantity() != 0 {
		t.Fatalf("expected cleared cart, got %+v", c.Items)
	}
}

func TestCartBelongsTo(t *testing.T) {
	c := NewCart(7)
	if !c.BelongsTo(7) || c.BelongsTo(8) {
		t.Fatal("unexpected ownership result")
	}
}
