package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingCents(t *testing.T) {
	p := Pricing{FreeShippingThresholdCents: 100000, FlatShippingCents: 9900}

	assert.Equal(t, int64(9900), p.ShippingCents(50000))
	assert.Equal(t, int64(9900), p.ShippingCents(100000), "threshold itself still pays shipping")
	assert.Equal(t, int64(0), p.ShippingCents(100001))
}

func TestSubtotal(t *testing.T) {
	items := []Item{
		{PriceCents: 500, Quantity: 2},
		{PriceCents: 1299, Quantity: 3},
	}
	assert.Equal(t, int64(500*2+1299*3), Subtotal(items))
	assert.Equal(t, int64(0), Subtotal(nil))
}
