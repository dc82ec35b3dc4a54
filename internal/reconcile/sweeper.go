// Package reconcile releases inventory reserved by online-payment
// orders that were never paid. Checkout reserves stock before the
// gateway confirms payment, so an abandoned payment would leak
// inventory permanently without this sweep.
package reconcile

import (
	"context"
	"log"
	"time"

	"github.com/Deoshabh/weBazaar-sub000/internal/orders"
)

type Store interface {
	FindAbandoned(ctx context.Context, cutoff time.Time) ([]string, error)
	// ReleaseAbandoned reverses one order's reservation in its own
	// transaction; false means the order no longer matched the
	// abandoned predicate and nothing was done.
	ReleaseAbandoned(ctx context.Context, orderID string, cutoff time.Time) (bool, error)
}

type Cache interface {
	InvalidateProducts(ctx context.Context) error
}

type Events interface {
	Emit(eventType, orderID string, payload any)
}

type Summary struct {
	Cleaned int `json:"cleaned"`
	Total   int `json:"total"`
}

type Sweeper struct {
	Store    Store
	Cache    Cache
	Events   Events
	Timeout  time.Duration // how old an unpaid order must be
	Interval time.Duration
	Now      func() time.Time
}

func (s *Sweeper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	if _, err := s.Sweep(ctx); err != nil {
		log.Printf("abandoned order sweep failed: %v", err)
	}
	t := time.NewTicker(s.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.Sweep(ctx); err != nil {
				log.Printf("abandoned order sweep failed: %v", err)
			}
		}
	}
}

// Sweep handles each abandoned order independently: one order's failure
// is logged and skipped, never fatal to the batch. The product cache is
// invalidated once per batch that released anything.
func (s *Sweeper) Sweep(ctx context.Context) (Summary, error) {
	cutoff := s.now().Add(-s.Timeout)

	ids, err := s.Store.FindAbandoned(ctx, cutoff)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Total: len(ids)}
	if len(ids) == 0 {
		return sum, nil
	}

	for _, id := range ids {
		released, err := s.Store.ReleaseAbandoned(ctx, id, cutoff)
		if err != nil {
			log.Printf("failed to clean abandoned order %s: %v", id, err)
			continue
		}
		if !released {
			continue
		}
		sum.Cleaned++
		if s.Events != nil {
			s.Events.Emit(orders.EventOrderCancelled, id, orders.OrderCancelledPayload{
				OrderID: id,
				Reason:  orders.ReasonPaymentTimeout,
			})
		}
	}

	if sum.Cleaned > 0 {
		if s.Cache != nil {
			if err := s.Cache.InvalidateProducts(ctx); err != nil {
				log.Printf("product cache invalidation failed: %v", err)
			}
		}
		log.Printf("cleaned abandoned orders: cleaned=%d total=%d", sum.Cleaned, sum.Total)
	}
	return sum, nil
}
