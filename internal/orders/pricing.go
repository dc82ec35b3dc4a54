package orders

// Pricing holds checkout amounts policy. All arithmetic is integer
// cents; floats never touch money.
type Pricing struct {
	FreeShippingThresholdCents int64
	FlatShippingCents          int64
}

// ShippingCents is zero above the free-shipping threshold, else the
// flat fee.
func (p Pricing) ShippingCents(subtotalCents int64) int64 {
	if subtotalCents > p.FreeShippingThresholdCents {
		return 0
	}
	return p.FlatShippingCents
}

func Subtotal(items []Item) int64 {
	var sum int64
	for _, it := range items {
		sum += it.PriceCents * int64(it.Quantity)
	}
	return sum
}
