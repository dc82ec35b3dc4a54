package orders

import "time"

type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "cod"
	PaymentRazorpay PaymentMethod = "razorpay"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Item is a purchase-time snapshot. Name and price are copied from the
// product so later catalog edits never alter historical orders.
type Item struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Size       string `json:"size"`
	Color      string `json:"color,omitempty"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

type Address struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// AppliedCoupon is a denormalized copy of the coupon terms at checkout
// time, not a live reference.
type AppliedCoupon struct {
	Code          string `json:"code"`
	Type          string `json:"type"`
	Value         int64  `json:"value"`
	DiscountCents int64  `json:"discount_cents"`
}

type Payment struct {
	Method          PaymentMethod `json:"method"`
	Status          PaymentStatus `json:"status"`
	TransactionID   string        `json:"transaction_id,omitempty"`
	RazorpayOrderID string        `json:"razorpay_order_id,omitempty"`
}

type Order struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"` // human-readable ORD-...
	UserID  string `json:"user_id"`

	Items []Item `json:"items"`

	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TotalCents    int64 `json:"total_cents"`
	// TotalAmountCents mirrors TotalCents; kept for frontend compatibility.
	TotalAmountCents int64 `json:"total_amount_cents"`

	Coupon          *AppliedCoupon `json:"coupon,omitempty"`
	ShippingAddress Address        `json:"shipping_address"`
	Payment         Payment        `json:"payment"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalItems sums line quantities, used in list summaries.
func (o *Order) TotalItems() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
