package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepo struct {
	db DB
}

// NewPostgres builds a Postgres-backed cart repository.
func NewPostgres(db DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) GetByCustomer(ctx context.Context, customerID int64) (*domain.Cart, error) {
	const q = `
SELECT id, customer_id, created_at, updated_at
FROM carts
WHERE customer_id = $1
`
	var cart domain.Cart
	err := r.db.QueryRow(ctx, q, customerID).Scan(&cart.ID, &cart.CustomerID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %d: %w", customerID, domain.ErrCartNotFound)
		}
		return nil, err
	}
	if err := r.loadItems(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetOrCreate(ctx context.Context, customerID int64) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (customer_id)
VALUES ($1)
ON CONFLICT (customer_id) DO UPDATE SET updated_at = now()
RETURNING id, customer_id, created_at, updated_at
`
	var cart domain.Cart
	if err := r.db.QueryRow(ctx, q, customerID).Scan(&cart.ID, &cart.CustomerID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) UpsertItem(ctx context.Context, cartID, productID int64, qty int) error {
	if qty <= 0 {
		return &domain.InvalidQuantityError{Quantity: qty}
	}
	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`
	if _, err := r.db.Exec(ctx, q, cartID, productID, qty); err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *postgresRepo) UpdateItemQuantity(ctx context.Context, cartID, productID int64, qty int) error {
	if qty < 0 {
		return &domain.InvalidQuantityError{Quantity: qty}
	}
	if qty == 0 {
		return r.RemoveItem(ctx, cartID, productID)
	}
	tag, err := r.db.Exec(ctx, `
UPDATE cart_items
SET quantity = $3
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not in cart: %w", productID, domain.ErrProductNotFound)
	}
	return r.touch(ctx, cartID)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, productID int64) error {
	tag, err := r.db.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not in cart: %w", productID, domain.ErrProductNotFound)
	}
	return r.touch(ctx, cartID)
}

func (r *postgresRepo) Clear(ctx context.Context, customerID int64) error {
	const q = `
DELETE FROM cart_items
WHERE cart_id = (SELECT id FROM carts WHERE customer_id = $1)
`
	if _, err := r.db.Exec(ctx, q, customerID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE customer_id = $1`, customerID)
	return err
}

func (r *postgresRepo) loadItems(ctx context.Context, cart *domain.Cart) error {
	const q = `
SELECT product_id, quantity
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := r.db.Query(ctx, q, cart.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return err
		}
		cart.Items = append(cart.Items, item)
	}
	return rows.Err()
}

func (r *postgresRepo) touch(ctx context.Context, cartID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}
