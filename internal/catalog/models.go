package catalog

import "time"

type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type Product struct {
	ID         string      `json:"id"`
	SKU        string      `json:"sku"`
	Slug       string      `json:"slug"`
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	PriceCents int64       `json:"price_cents"`
	Stock      int         `json:"stock"` // denormalized sum of Sizes
	IsActive   bool        `json:"is_active"`
	Sizes      []SizeStock `json:"sizes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
