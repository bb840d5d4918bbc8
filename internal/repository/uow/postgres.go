package uow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresUOW struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres builds a UnitOfWork over a pgx pool.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) UnitOfWork {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresUOW{pool: pool, logger: logger}
}

func (u *postgresUOW) Within(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	repos := Repos{
		Products: productrepo.NewPostgres(tx, u.logger),
		Carts:    cartrepo.NewPostgres(tx),
		Orders:   orderrepo.NewPostgres(tx, u.logger),
	}

	if err := fn(ctx, repos); err != nil {
		return classify(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return classify(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// classify maps serialization failures and deadlocks onto the domain's
// concurrency conflict so orchestrators can retry them.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %s", domain.ErrConcurrentModification, pgErr.Code)
		}
	}
	return err
}
