package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedProduct struct {
	name        string
	description string
	amount      string
	currency    string
	stock       int
	visible     bool
}

var products = []seedProduct{
	{"Ceramic Mug", "Hand glazed stoneware mug, 350ml", "120000", "VND", 40, true},
	{"Drip Coffee Filter", "Stainless steel pour-over filter", "210000", "VND", 25, true},
	{"Linen Tote Bag", "Natural linen, flat bottom", "95000", "VND", 60, true},
	{"Beeswax Candle", "Pure beeswax, 20 hour burn", "85000", "VND", 0, true},
	{"Walnut Serving Board", "Oiled walnut, 30x20cm", "450000", "VND", 12, true},
	{"Archived Sampler", "Discontinued gift set", "300000", "VND", 5, false},
}

// Apply inserts demo catalog data. Existing products are left untouched, so
// the seed is safe to run repeatedly.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO products (name, description, price_amount, price_currency, stock_quantity, is_visible)
SELECT $1, $2, $3::numeric, $4, $5, $6
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)`

	for _, p := range products {
		if _, err := pool.Exec(ctx, q, p.name, p.description, p.amount, p.currency, p.stock, p.visible); err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
	}
	return nil
}
