package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartLine is a cart item joined with its product at checkout time.
type CartLine struct {
	ProductID    string
	Name         string
	PriceCents   int64
	Size         string
	Color        string
	Quantity     int
	Active       bool
	ProductStock int
}

// Draft is everything the atomic section needs to persist an order.
// Pricing and validation happen before it is built; the draft itself is
// written inside one transaction.
type Draft struct {
	ID            string // row id (uuid)
	OrderID       string // human-readable id
	UserID        string
	Items         []Item
	SubtotalCents int64
	ShippingCents int64
	DiscountCents int64
	TotalCents    int64
	Coupon        *AppliedCoupon
	Address       Address
	PaymentMethod PaymentMethod
	Status        Status
}

type Repo struct{ DB *pgxpool.Pool }

const orderColumns = `id, order_id, user_id,
	subtotal_cents, shipping_cents, discount_cents, total_cents,
	coupon_code, coupon_type, coupon_value, coupon_discount,
	addr_full_name, addr_phone, addr_line1, addr_line2, addr_city, addr_state, addr_postal, addr_country,
	payment_method, payment_status, transaction_id, razorpay_order_id,
	status, created_at, updated_at`

func (r *Repo) CartLines(ctx context.Context, userID string) ([]CartLine, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ci.product_id, p.name, p.price_cents, ci.size, ci.color, ci.quantity, p.is_active, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.added_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.PriceCents, &l.Size, &l.Color,
			&l.Quantity, &l.Active, &l.ProductStock); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CreateFromCart is the atomic section of checkout. In one transaction:
// conditionally decrement per-size and scalar stock for every line,
// conditionally redeem the coupon, insert the order with its snapshot
// items, and clear the cart. Any failure rolls everything back.
func (r *Repo) CreateFromCart(ctx context.Context, d Draft) (*Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, it := range d.Items {
		// Condition-in-the-update: zero affected rows means another
		// checkout got the stock first.
		ct, err := tx.Exec(ctx, `
			UPDATE product_sizes SET stock = stock - $3
			WHERE product_id = $1 AND size = $2 AND stock >= $3`,
			it.ProductID, it.Size, it.Quantity)
		if err != nil {
			return nil, err
		}
		if ct.RowsAffected() == 0 {
			return nil, &InsufficientStockError{ProductID: it.ProductID, Size: it.Size}
		}

		// Denormalized scalar moves together with the per-size counter.
		ct, err = tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = now()
			WHERE id = $1 AND stock >= $2`,
			it.ProductID, it.Quantity)
		if err != nil {
			return nil, err
		}
		if ct.RowsAffected() == 0 {
			return nil, &InsufficientStockError{ProductID: it.ProductID, Size: it.Size}
		}
	}

	if d.Coupon != nil {
		ct, err := tx.Exec(ctx, `
			UPDATE coupons SET used_count = used_count + 1
			WHERE code = $1 AND (usage_limit IS NULL OR used_count < usage_limit)`,
			d.Coupon.Code)
		if err != nil {
			return nil, err
		}
		if ct.RowsAffected() == 0 {
			return nil, ErrCouponExhausted
		}
	}

	o := &Order{
		ID:               d.ID,
		OrderID:          d.OrderID,
		UserID:           d.UserID,
		Items:            d.Items,
		SubtotalCents:    d.SubtotalCents,
		ShippingCents:    d.ShippingCents,
		DiscountCents:    d.DiscountCents,
		TotalCents:       d.TotalCents,
		TotalAmountCents: d.TotalCents,
		Coupon:           d.Coupon,
		ShippingAddress:  d.Address,
		Payment:          Payment{Method: d.PaymentMethod, Status: PaymentPending},
		Status:           d.Status,
	}

	var cCode, cType *string
	var cValue, cDiscount *int64
	if d.Coupon != nil {
		cCode, cType = &d.Coupon.Code, &d.Coupon.Type
		cValue, cDiscount = &d.Coupon.Value, &d.Coupon.DiscountCents
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, order_id, user_id,
			subtotal_cents, shipping_cents, discount_cents, total_cents,
			coupon_code, coupon_type, coupon_value, coupon_discount,
			addr_full_name, addr_phone, addr_line1, addr_line2, addr_city, addr_state, addr_postal, addr_country,
			payment_method, payment_status, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		RETURNING created_at, updated_at`,
		d.ID, d.OrderID, d.UserID,
		d.SubtotalCents, d.ShippingCents, d.DiscountCents, d.TotalCents,
		cCode, cType, cValue, cDiscount,
		d.Address.FullName, d.Address.Phone, d.Address.AddressLine1, d.Address.AddressLine2,
		d.Address.City, d.Address.State, d.Address.PostalCode, d.Address.Country,
		string(d.PaymentMethod), string(PaymentPending), string(d.Status),
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	for _, it := range d.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, name, price_cents, size, color, quantity)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			d.ID, it.ProductID, it.Name, it.PriceCents, it.Size, it.Color, it.Quantity); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, d.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	o.Items, err = loadItems(ctx, r.DB, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+`
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	irows, err := r.DB.Query(ctx, `
		SELECT order_id, product_id, name, price_cents, size, color, quantity
		FROM order_items WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer irows.Close()

	byOrder := make(map[string][]Item, len(out))
	for irows.Next() {
		var oid string
		var it Item
		if err := irows.Scan(&oid, &it.ProductID, &it.Name, &it.PriceCents, &it.Size, &it.Color, &it.Quantity); err != nil {
			return nil, err
		}
		byOrder[oid] = append(byOrder[oid], it)
	}
	if err := irows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = byOrder[out[i].ID]
	}
	return out, nil
}

// MarkPaid flips payment to paid and promotes pending_payment orders to
// confirmed. Inventory is untouched: the reservation already happened
// at creation time.
func (r *Repo) MarkPaid(ctx context.Context, id, transactionID string) (*Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `
		UPDATE orders SET
			payment_status = 'paid',
			transaction_id = $2,
			status = CASE WHEN status = 'pending_payment' THEN 'confirmed' ELSE status END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, transactionID))
	if err != nil {
		return nil, err
	}
	o.Items, err = loadItems(ctx, r.DB, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) SetRazorpayOrder(ctx context.Context, id, razorpayOrderID string) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders SET razorpay_order_id = $2, updated_at = now() WHERE id = $1`,
		id, razorpayOrderID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	var cCode, cType *string
	var cValue, cDiscount *int64
	var txnID, rzpID *string
	err := row.Scan(&o.ID, &o.OrderID, &o.UserID,
		&o.SubtotalCents, &o.ShippingCents, &o.DiscountCents, &o.TotalCents,
		&cCode, &cType, &cValue, &cDiscount,
		&o.ShippingAddress.FullName, &o.ShippingAddress.Phone,
		&o.ShippingAddress.AddressLine1, &o.ShippingAddress.AddressLine2,
		&o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.Payment.Method, &o.Payment.Status, &txnID, &rzpID,
		&o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	o.TotalAmountCents = o.TotalCents
	if cCode != nil {
		o.Coupon = &AppliedCoupon{Code: *cCode}
		if cType != nil {
			o.Coupon.Type = *cType
		}
		if cValue != nil {
			o.Coupon.Value = *cValue
		}
		if cDiscount != nil {
			o.Coupon.DiscountCents = *cDiscount
		}
	}
	if txnID != nil {
		o.Payment.TransactionID = *txnID
	}
	if rzpID != nil {
		o.Payment.RazorpayOrderID = *rzpID
	}
	return &o, nil
}

func loadItems(ctx context.Context, q queryer, orderID string) ([]Item, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, name, price_cents, size, color, quantity
		FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.PriceCents, &it.Size, &it.Color, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
