package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

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
	db     DB
	logger *log.Logger
}

// NewPostgres builds a Postgres-backed order repository.
func NewPostgres(db DB, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{db: db, logger: logger}
}

const orderColumns = `id, customer_id, shipping_address, phone_number, payment_method, COALESCE(notes, ''), status, total_amount::text, total_currency, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o *domain.Order) error {
	const q = `
INSERT INTO orders (customer_id, shipping_address, phone_number, payment_method, notes, status, total_amount, total_currency)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7::numeric, $8)
RETURNING id, created_at, updated_at
`
	err := r.db.QueryRow(ctx, q,
		o.CustomerID,
		o.ShippingAddress,
		o.PhoneNumber,
		string(o.PaymentMethod),
		o.Notes,
		string(o.Status),
		o.TotalAmount.Amount().String(),
		string(o.TotalAmount.Currency()),
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		r.logger.Printf("order repo: create customer_id=%d error=%v", o.CustomerID, err)
		return err
	}

	const itemQ = `
INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price_amount, unit_price_currency)
VALUES ($1, $2, $3, $4, $5::numeric, $6)
`
	for _, item := range o.Items {
		if _, err := r.db.Exec(ctx, itemQ,
			o.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice.Amount().String(),
			string(item.UnitPrice.Currency()),
		); err != nil {
			r.logger.Printf("order repo: create item order_id=%d product_id=%d error=%v", o.ID, item.ProductID, err)
			return err
		}
	}
	r.logger.Printf("order repo: created id=%d customer_id=%d items=%d", o.ID, o.CustomerID, len(o.Items))
	return nil
}

func (r *postgresRepo) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	o, err := scanOrder(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
		}
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.getByID(ctx, id, false)
}

func (r *postgresRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.getByID(ctx, id, true)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if err := r.loadItems(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, o *domain.Order) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, o.ID, string(o.Status))
	if err != nil {
		r.logger.Printf("order repo: update status id=%d error=%v", o.ID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", o.ID, domain.ErrOrderNotFound)
	}
	r.logger.Printf("order repo: status id=%d -> %s", o.ID, o.Status)
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var payment, status, amount, currency string
	if err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.ShippingAddress,
		&o.PhoneNumber,
		&payment,
		&o.Notes,
		&status,
		&amount,
		&currency,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	parsedStatus, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", o.ID, err)
	}
	o.Status = parsedStatus
	o.PaymentMethod = domain.PaymentMethod(payment)
	total, err := domain.ParseMoney(amount, domain.Currency(currency))
	if err != nil {
		return nil, fmt.Errorf("order %d total: %w", o.ID, err)
	}
	o.TotalAmount = total
	return &o, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT product_id, product_name, quantity, unit_price_amount::text, unit_price_currency
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.db.Query(ctx, q, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var amount, currency string
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &amount, &currency); err != nil {
			return err
		}
		price, err := domain.ParseMoney(amount, domain.Currency(currency))
		if err != nil {
			return fmt.Errorf("order %d item %d price: %w", o.ID, item.ProductID, err)
		}
		item.UnitPrice = price
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}
