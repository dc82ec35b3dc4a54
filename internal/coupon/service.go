package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("coupon not found")

type Store interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	// CountUserUsage counts the user's non-cancelled orders that
	// redeemed the given code.
	CountUserUsage(ctx context.Context, userID, code string) (int, error)
}

type Service struct {
	Store Store
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Validate is a pure read-side check. Redemption (the used_count
// increment) happens only inside the order transaction, never here, so
// there is no validate-then-redeem race window on this path.
func (s *Service) Validate(ctx context.Context, code string, subtotalCents int64, userID string) (Result, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Result{Message: "Coupon code is required"}, nil
	}

	c, err := s.Store.GetByCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return Result{Message: "Invalid coupon code"}, nil
	}
	if err != nil {
		return Result{}, err
	}

	if !c.IsActive {
		return Result{Found: true, Message: "Coupon is inactive"}, nil
	}
	now := s.now()
	if now.Before(c.ValidFrom) {
		return Result{Found: true, Message: "Coupon is not yet valid"}, nil
	}
	if now.After(c.Expiry) {
		return Result{Found: true, Message: "Coupon has expired"}, nil
	}
	if subtotalCents < c.MinOrderCents {
		return Result{Found: true, Message: fmt.Sprintf("Minimum order value of ₹%d required", c.MinOrderCents/100)}, nil
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return Result{Found: true, Message: "Coupon usage limit reached"}, nil
	}
	if userID != "" {
		n, err := s.Store.CountUserUsage(ctx, userID, c.Code)
		if err != nil {
			return Result{}, err
		}
		if n > 0 {
			return Result{Found: true, Message: "You have already used this coupon"}, nil
		}
	}

	return Result{
		Valid:         true,
		Found:         true,
		Message:       "Coupon applied successfully",
		DiscountCents: Discount(c, subtotalCents),
		Coupon:        c,
	}, nil
}

// Discount computes the cents knocked off a subtotal: the flat value,
// or the percentage rounded to the nearest cent, clamped to never
// exceed the subtotal.
func Discount(c *Coupon, subtotalCents int64) int64 {
	var d int64
	switch c.Type {
	case TypeFlat:
		d = c.Value
	case TypePercent:
		d = (subtotalCents*c.Value + 50) / 100
	}
	if d > subtotalCents {
		d = subtotalCents
	}
	if d < 0 {
		d = 0
	}
	return d
}
