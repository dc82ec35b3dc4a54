package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Deoshabh/weBazaar-sub000/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrder struct {
	status        orders.Status
	paymentStatus orders.PaymentStatus
	createdAt     time.Time
	qty           int
}

type fakeStore struct {
	mu      sync.Mutex
	orders  map[string]*fakeOrder
	stock   int
	failIDs map[string]error
}

func (f *fakeStore) abandoned(o *fakeOrder, cutoff time.Time) bool {
	return o.paymentStatus == orders.PaymentPending &&
		(o.status == orders.StatusPendingPayment || o.status == orders.StatusConfirmed) &&
		o.createdAt.Before(cutoff)
}

func (f *fakeStore) FindAbandoned(_ context.Context, cutoff time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, o := range f.orders {
		if f.abandoned(o, cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeStore) ReleaseAbandoned(_ context.Context, orderID string, cutoff time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIDs[orderID]; err != nil {
		return false, err
	}
	o, ok := f.orders[orderID]
	if !ok || !f.abandoned(o, cutoff) {
		return false, nil
	}
	f.stock += o.qty
	o.status = orders.StatusCancelled
	o.paymentStatus = orders.PaymentFailed
	return true, nil
}

type countingCache struct{ invalidations int }

func (c *countingCache) InvalidateProducts(context.Context) error {
	c.invalidations++
	return nil
}

type captureEvents struct{ payloads []orders.OrderCancelledPayload }

func (e *captureEvents) Emit(_, _ string, payload any) {
	e.payloads = append(e.payloads, payload.(orders.OrderCancelledPayload))
}

var sweepNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newSweepFixture() (*Sweeper, *fakeStore, *countingCache, *captureEvents) {
	store := &fakeStore{orders: map[string]*fakeOrder{}, failIDs: map[string]error{}}
	cache := &countingCache{}
	events := &captureEvents{}
	sw := &Sweeper{
		Store:   store,
		Cache:   cache,
		Events:  events,
		Timeout: 30 * time.Minute,
		Now:     func() time.Time { return sweepNow },
	}
	return sw, store, cache, events
}

func stale(status orders.Status, qty int) *fakeOrder {
	return &fakeOrder{
		status:        status,
		paymentStatus: orders.PaymentPending,
		createdAt:     sweepNow.Add(-time.Hour),
		qty:           qty,
	}
}

func TestSweepReleasesAbandonedOrders(t *testing.T) {
	sw, store, cache, events := newSweepFixture()
	store.orders["o1"] = stale(orders.StatusPendingPayment, 2)
	store.orders["o2"] = stale(orders.StatusConfirmed, 1)
	store.orders["fresh"] = &fakeOrder{
		status:        orders.StatusPendingPayment,
		paymentStatus: orders.PaymentPending,
		createdAt:     sweepNow.Add(-5 * time.Minute),
		qty:           1,
	}
	paid := stale(orders.StatusConfirmed, 1)
	paid.paymentStatus = orders.PaymentPaid
	store.orders["paid"] = paid

	sum, err := sw.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Cleaned: 2, Total: 2}, sum)

	assert.Equal(t, 3, store.stock, "reserved stock returned")
	assert.Equal(t, orders.StatusCancelled, store.orders["o1"].status)
	assert.Equal(t, orders.PaymentFailed, store.orders["o1"].paymentStatus)
	assert.Equal(t, orders.StatusPendingPayment, store.orders["fresh"].status)
	assert.Equal(t, orders.StatusConfirmed, store.orders["paid"].status)

	assert.Equal(t, 1, cache.invalidations, "one invalidation per batch")
	require.Len(t, events.payloads, 2)
	for _, p := range events.payloads {
		assert.Equal(t, orders.ReasonPaymentTimeout, p.Reason)
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	sw, store, cache, _ := newSweepFixture()
	store.orders["o1"] = stale(orders.StatusPendingPayment, 2)

	sum, err := sw.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Cleaned: 1, Total: 1}, sum)

	sum, err = sw.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
	assert.Equal(t, 2, store.stock, "stock restored exactly once")
	assert.Equal(t, 1, cache.invalidations)
}

func TestSweepSkipsFailedOrdersAndContinues(t *testing.T) {
	sw, store, _, events := newSweepFixture()
	store.orders["bad"] = stale(orders.StatusPendingPayment, 1)
	store.orders["good"] = stale(orders.StatusConfirmed, 2)
	store.failIDs["bad"] = errors.New("deadlock detected")

	sum, err := sw.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Cleaned: 1, Total: 2}, sum)
	assert.Equal(t, orders.StatusCancelled, store.orders["good"].status)
	assert.Equal(t, orders.StatusPendingPayment, store.orders["bad"].status)
	require.Len(t, events.payloads, 1)
	assert.Equal(t, "good", events.payloads[0].OrderID)
}

func TestSweepNoCacheTouchWhenNothingReleased(t *testing.T) {
	sw, _, cache, events := newSweepFixture()

	sum, err := sw.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
	assert.Equal(t, 0, cache.invalidations)
	assert.Empty(t, events.payloads)
}

func TestSweepCountsRacedOrdersAsTotalOnly(t *testing.T) {
	sw, store, _, _ := newSweepFixture()
	store.orders["o1"] = stale(orders.StatusPendingPayment, 1)

	// Paid between FindAbandoned and ReleaseAbandoned.
	raced := stale(orders.StatusPendingPayment, 1)
	store.orders["raced"] = raced
	sw.Store = &racingStore{fakeStore: store, raceID: "raced"}

	sum, err := sw.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Cleaned: 1, Total: 2}, sum)
	assert.Equal(t, orders.PaymentPaid, raced.paymentStatus)
}

// racingStore marks one order paid after it has been listed, before it
// can be released.
type racingStore struct {
	*fakeStore
	raceID string
}

func (r *racingStore) ReleaseAbandoned(ctx context.Context, orderID string, cutoff time.Time) (bool, error) {
	if orderID == r.raceID {
		r.mu.Lock()
		r.orders[orderID].paymentStatus = orders.PaymentPaid
		r.mu.Unlock()
	}
	return r.fakeStore.ReleaseAbandoned(ctx, orderID, cutoff)
}
