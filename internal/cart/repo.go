package cart

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Items(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ci.product_id, p.name, p.price_cents, ci.size, ci.color, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.added_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.PriceCents, &it.Size, &it.Color, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) Quantity(ctx context.Context, userID, productID, size, color string) (int, error) {
	var qty int
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM cart_items
		WHERE user_id = $1 AND product_id = $2 AND size = $3 AND color = $4`,
		userID, productID, size, color).Scan(&qty)
	return qty, err
}

// Add merges into an existing line for the same product/size/color.
func (r *Repo) Add(ctx context.Context, userID, productID, size, color string, qty int) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO cart_items(user_id, product_id, size, color, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id, size, color)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		userID, productID, size, color, qty)
	return err
}

// SetQuantity updates every color variant of the product/size line,
// matching how the storefront addresses cart rows.
func (r *Repo) SetQuantity(ctx context.Context, userID, productID, size string, qty int) (bool, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE cart_items SET quantity = $4
		WHERE user_id = $1 AND product_id = $2 AND size = $3`,
		userID, productID, size, qty)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) Remove(ctx context.Context, userID, productID, size string) error {
	_, err := r.DB.Exec(ctx, `
		DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2 AND size = $3`,
		userID, productID, size)
	return err
}

func (r *Repo) Clear(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
