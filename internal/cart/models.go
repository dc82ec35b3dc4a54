package cart

import (
	"errors"
	"fmt"
)

type Item struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Size       string `json:"size"`
	Color      string `json:"color,omitempty"`
	Quantity   int    `json:"quantity"`
}

// Summary is the cart response shape: items plus the derived totals the
// storefront renders.
type Summary struct {
	Items            []Item `json:"items"`
	TotalItems       int    `json:"total_items"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

func Summarize(items []Item) Summary {
	s := Summary{Items: items}
	if s.Items == nil {
		s.Items = []Item{}
	}
	for _, it := range items {
		s.TotalItems += it.Quantity
		s.TotalAmountCents += it.PriceCents * int64(it.Quantity)
	}
	return s
}

var (
	ErrBadQuantity  = errors.New("quantity must be at least 1")
	ErrItemNotFound = errors.New("item not found in cart")
)

type SizeUnavailableError struct {
	Size string
}

func (e *SizeUnavailableError) Error() string {
	return fmt.Sprintf("size %q is not available for this product", e.Size)
}
