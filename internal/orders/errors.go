package orders

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCouponExhausted    = errors.New("coupon usage limit reached")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotOwner           = errors.New("not authorized for this order")
	ErrBadPaymentMethod   = errors.New("unsupported payment method")
	ErrWrongPaymentMethod = errors.New("order does not use this payment method")
	ErrAlreadyPaid        = errors.New("order already paid")
	ErrSignatureMismatch  = errors.New("payment verification failed")
)

// InsufficientStockError names the exact product/size that made the
// checkout (or cart mutation) fail.
type InsufficientStockError struct {
	ProductID string
	Size      string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s size %s", e.ProductID, e.Size)
}

type ProductUnavailableError struct {
	ProductID string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s not found or unavailable", e.ProductID)
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

type AddressFieldError struct {
	Field  string
	Reason string
}

func (e *AddressFieldError) Error() string {
	return fmt.Sprintf("shipping address %s: %s", e.Field, e.Reason)
}

// CouponInvalidError carries the read-side rejection message verbatim.
type CouponInvalidError struct {
	Reason string
}

func (e *CouponInvalidError) Error() string { return e.Reason }
