package product

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

// DB is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx, so the
// same repository works inside and outside a unit of work.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepo struct {
	db     DB
	logger *log.Logger
}

// NewPostgres builds a Postgres-backed product repository.
func NewPostgres(db DB, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{db: db, logger: logger}
}

const productColumns = `id, name, COALESCE(description, ''), price_amount::text, price_currency, stock_quantity, is_visible, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var amount, currency string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &amount, &currency, &p.StockQuantity, &p.IsVisible, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	price, err := domain.ParseMoney(amount, domain.Currency(currency))
	if err != nil {
		return nil, fmt.Errorf("product %d price: %w", p.ID, err)
	}
	p.Price = price
	return &p, nil
}

func (r *postgresRepo) list(ctx context.Context, q string) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

func (r *postgresRepo) ListVisible(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE is_visible ORDER BY created_at DESC`)
}

func (r *postgresRepo) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	p, err := scanProduct(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return r.getByID(ctx, id, false)
}

func (r *postgresRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return r.getByID(ctx, id, true)
}

func (r *postgresRepo) Create(ctx context.Context, p *domain.Product) error {
	const q = `
INSERT INTO products (name, description, price_amount, price_currency, stock_quantity, is_visible)
VALUES ($1, NULLIF($2, ''), $3::numeric, $4, $5, $6)
RETURNING id, created_at, updated_at
`
	err := r.db.QueryRow(ctx, q,
		p.Name,
		p.Description,
		p.Price.Amount().String(),
		string(p.Price.Currency()),
		p.StockQuantity,
		p.IsVisible,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: create name=%q error=%v", p.Name, err)
		return err
	}
	r.logger.Printf("product repo: created id=%d name=%q", p.ID, p.Name)
	return nil
}

func (r *postgresRepo) Update(ctx context.Context, p *domain.Product) error {
	const q = `
UPDATE products
SET name = $2,
    description = NULLIF($3, ''),
    price_amount = $4::numeric,
    price_currency = $5,
    is_visible = $6,
    updated_at = now()
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, q,
		p.ID,
		p.Name,
		p.Description,
		p.Price.Amount().String(),
		string(p.Price.Currency()),
		p.IsVisible,
	)
	if err != nil {
		r.logger.Printf("product repo: update id=%d error=%v", p.ID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", p.ID, domain.ErrProductNotFound)
	}
	return nil
}

func (r *postgresRepo) SetVisibility(ctx context.Context, id int64, visible bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET is_visible = $2, updated_at = now() WHERE id = $1`, id, visible)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return nil
}

// ReduceStock uses a guarded decrement so the availability check and the
// write are a single statement. A guard miss is resolved into either
// not-found or insufficient stock by re-reading the row.
func (r *postgresRepo) ReduceStock(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return &domain.InvalidQuantityError{Quantity: qty}
	}
	const q = `
UPDATE products
SET stock_quantity = stock_quantity - $2,
    updated_at = now()
WHERE id = $1 AND stock_quantity >= $2
`
	tag, err := r.db.Exec(ctx, q, id, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var available int
		err := r.db.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = $1`, id).Scan(&available)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		if err != nil {
			return err
		}
		return &domain.InsufficientStockError{ProductID: id, Requested: qty, Available: available}
	}
	r.logger.Printf("product repo: reduced stock id=%d qty=%d", id, qty)
	return nil
}

func (r *postgresRepo) RestoreStock(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return &domain.InvalidQuantityError{Quantity: qty}
	}
	tag, err := r.db.Exec(ctx, `UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now() WHERE id = $1`, id, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	r.logger.Printf("product repo: restored stock id=%d qty=%d", id, qty)
	return nil
}
