package coupon

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	var c Coupon
	err := r.DB.QueryRow(ctx, `
		SELECT code, type, value, min_order_cents, valid_from, expiry, is_active, usage_limit, used_count
		FROM coupons WHERE code = $1`, code).
		Scan(&c.Code, &c.Type, &c.Value, &c.MinOrderCents, &c.ValidFrom, &c.Expiry,
			&c.IsActive, &c.UsageLimit, &c.UsedCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) CountUserUsage(ctx context.Context, userID, code string) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE user_id = $1 AND coupon_code = $2 AND status <> 'cancelled'`,
		userID, code).Scan(&n)
	return n, err
}
