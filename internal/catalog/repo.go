package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Get(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, sku, slug, name, category, price_cents, stock, is_active, created_at, updated_at
		FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.SKU, &p.Slug, &p.Name, &p.Category, &p.PriceCents, &p.Stock,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT size, stock FROM product_sizes WHERE product_id = $1 ORDER BY size`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s SizeStock
		if err := rows.Scan(&s.Size, &s.Stock); err != nil {
			return nil, err
		}
		p.Sizes = append(p.Sizes, s)
	}
	return &p, rows.Err()
}

// SizeStock returns the stock for one size and whether the size exists
// at all for the product.
func (r *Repo) SizeStock(ctx context.Context, productID, size string) (int, bool, error) {
	var stock int
	err := r.DB.QueryRow(ctx, `
		SELECT stock FROM product_sizes WHERE product_id = $1 AND size = $2`,
		productID, size).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return stock, true, nil
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, sku, slug, name, category, price_cents, stock, is_active, created_at, updated_at
		FROM products WHERE is_active ORDER BY sku`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Slug, &p.Name, &p.Category, &p.PriceCents,
			&p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
