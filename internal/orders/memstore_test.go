package orders

import (
	"context"
	"sync"
	"time"
)

// memStore mimics the repo's transactional semantics in memory: every
// mutation either fully applies or is undone, and conditional stock and
// coupon updates fail without side effects.
type memStore struct {
	mu        sync.Mutex
	lines     map[string][]CartLine // userID -> cart
	sizeStock map[string]int        // productID|size
	prodStock map[string]int
	coupons   map[string]*memCoupon
	orders    map[string]*Order
}

type memCoupon struct {
	limit *int // nil = unlimited
	used  int
}

func newMemStore() *memStore {
	return &memStore{
		lines:     map[string][]CartLine{},
		sizeStock: map[string]int{},
		prodStock: map[string]int{},
		coupons:   map[string]*memCoupon{},
		orders:    map[string]*Order{},
	}
}

func stockKey(productID, size string) string { return productID + "|" + size }

func (m *memStore) setStock(productID, size string, n int) {
	m.sizeStock[stockKey(productID, size)] = n
	m.prodStock[productID] += n
}

func (m *memStore) CartLines(_ context.Context, userID string) ([]CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CartLine, len(m.lines[userID]))
	copy(out, m.lines[userID])
	for i := range out {
		out[i].ProductStock = m.prodStock[out[i].ProductID]
	}
	return out, nil
}

func (m *memStore) CreateFromCart(_ context.Context, d Draft) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var undo []func()
	abort := func(err error) (*Order, error) {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		return nil, err
	}

	for _, it := range d.Items {
		it := it
		k := stockKey(it.ProductID, it.Size)
		if m.sizeStock[k] < it.Quantity {
			return abort(&InsufficientStockError{ProductID: it.ProductID, Size: it.Size})
		}
		m.sizeStock[k] -= it.Quantity
		undo = append(undo, func() { m.sizeStock[k] += it.Quantity })

		if m.prodStock[it.ProductID] < it.Quantity {
			return abort(&InsufficientStockError{ProductID: it.ProductID, Size: it.Size})
		}
		m.prodStock[it.ProductID] -= it.Quantity
		undo = append(undo, func() { m.prodStock[it.ProductID] += it.Quantity })
	}

	if d.Coupon != nil {
		c := m.coupons[d.Coupon.Code]
		if c == nil || (c.limit != nil && c.used >= *c.limit) {
			return abort(ErrCouponExhausted)
		}
		c.used++
		undo = append(undo, func() { c.used-- })
	}

	now := time.Now()
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
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m.orders[d.ID] = o
	m.lines[d.UserID] = nil

	cp := *o
	return &cp, nil
}

func (m *memStore) Get(_ context.Context, id string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memStore) Transition(_ context.Context, id string, to Status) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if !CanTransition(o.Status, to) {
		return nil, &InvalidTransitionError{From: o.Status, To: to}
	}
	if to == StatusCancelled {
		for _, it := range o.Items {
			k := stockKey(it.ProductID, it.Size)
			if _, exists := m.sizeStock[k]; !exists {
				continue // product deleted since purchase
			}
			m.sizeStock[k] += it.Quantity
			m.prodStock[it.ProductID] += it.Quantity
		}
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func (m *memStore) MarkPaid(_ context.Context, id, transactionID string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.Payment.Status = PaymentPaid
	o.Payment.TransactionID = transactionID
	if o.Status == StatusPendingPayment {
		o.Status = StatusConfirmed
	}
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func (m *memStore) SetRazorpayOrder(_ context.Context, id, razorpayOrderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.Payment.RazorpayOrderID = razorpayOrderID
	return nil
}
