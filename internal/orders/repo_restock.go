package orders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
)

// Transition moves an order to a new status under the allow-list, all
// inside one transaction. Moving to cancelled also restores the stock
// reserved at creation time, the exact mirror of CreateFromCart.
func (r *Repo) Transition(ctx context.Context, id string, to Status) (*Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, to) {
		return nil, &InvalidTransitionError{From: o.Status, To: to}
	}

	o.Items, err = loadItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if to == StatusCancelled {
		if err := restockItemsTx(ctx, tx, o.Items); err != nil {
			return nil, err
		}
	}

	if err := tx.QueryRow(ctx, `
		UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
		RETURNING updated_at`, id, string(to)).Scan(&o.UpdatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	o.Status = to
	return o, nil
}

// FindAbandoned returns ids of online-payment orders whose gateway
// payment never arrived within the timeout window.
func (r *Repo) FindAbandoned(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id FROM orders
		WHERE payment_method = 'razorpay'
		  AND payment_status = 'pending'
		  AND status IN ('pending_payment', 'confirmed')
		  AND created_at < $1
		ORDER BY created_at`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReleaseAbandoned reverses one abandoned order's reservation in its own
// transaction. The predicate is rechecked under the row lock, so a
// concurrent sweep or user cancel makes this a no-op (false, nil).
func (r *Repo) ReleaseAbandoned(ctx context.Context, id string, cutoff time.Time) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status, payStatus string
	var createdAt time.Time
	err = tx.QueryRow(ctx, `
		SELECT status, payment_status, created_at FROM orders
		WHERE id = $1 AND payment_method = 'razorpay' FOR UPDATE`, id).
		Scan(&status, &payStatus, &createdAt)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s := Status(status)
	if payStatus != string(PaymentPending) || (s != StatusPendingPayment && s != StatusConfirmed) || !createdAt.Before(cutoff) {
		return false, nil
	}

	items, err := loadItems(ctx, tx, id)
	if err != nil {
		return false, err
	}
	if err := restockItemsTx(ctx, tx, items); err != nil {
		return false, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE orders SET status = 'cancelled', payment_status = 'failed', updated_at = now()
		WHERE id = $1`, id); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// restockItemsTx adds reserved quantities back to both the per-size and
// scalar counters. Items whose product (or size row) was deleted since
// purchase have nothing to restore and are skipped.
func restockItemsTx(ctx context.Context, tx pgx.Tx, items []Item) error {
	for _, it := range items {
		ct, err := tx.Exec(ctx, `
			UPDATE product_sizes SET stock = stock + $3
			WHERE product_id = $1 AND size = $2`,
			it.ProductID, it.Size, it.Quantity)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			log.Printf("restock skipped: product=%s size=%s", it.ProductID, it.Size)
			continue
		}
		if _, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock + $2, updated_at = now()
			WHERE id = $1`,
			it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}
