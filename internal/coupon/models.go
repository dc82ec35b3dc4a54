package coupon

import "time"

type Type string

const (
	TypeFlat    Type = "flat"
	TypePercent Type = "percent"
)

type Coupon struct {
	Code string `json:"code"`
	Type Type   `json:"type"`
	// Value is cents for flat coupons, percentage points for percent.
	Value         int64     `json:"value"`
	MinOrderCents int64     `json:"min_order_cents"`
	ValidFrom     time.Time `json:"valid_from"`
	Expiry        time.Time `json:"expiry"`
	IsActive      bool      `json:"is_active"`
	UsageLimit    *int      `json:"usage_limit,omitempty"` // nil means unlimited
	UsedCount     int       `json:"used_count"`
}

// Result is the read-side validation outcome. Invalid coupons are a
// business answer, not an error; errors are reserved for infrastructure.
type Result struct {
	Valid bool `json:"valid"`
	// Found distinguishes "no such code" (404 at the edge) from a code
	// that exists but fails a rule (400).
	Found         bool    `json:"-"`
	Message       string  `json:"message"`
	DiscountCents int64   `json:"discount_cents"`
	Coupon        *Coupon `json:"coupon,omitempty"`
}
