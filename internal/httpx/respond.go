package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Deoshabh/weBazaar-sub000/internal/cart"
	"github.com/Deoshabh/weBazaar-sub000/internal/coupon"
	"github.com/Deoshabh/weBazaar-sub000/internal/orders"
	"github.com/Deoshabh/weBazaar-sub000/internal/payments"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func message(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

// writeError maps the closed set of domain error kinds onto HTTP status
// codes. Anything unrecognized is an infrastructure failure: log it,
// suppress the detail.
func writeError(w http.ResponseWriter, err error) {
	var (
		stockErr *orders.InsufficientStockError
		prodErr  *orders.ProductUnavailableError
		transErr *orders.InvalidTransitionError
		addrErr  *orders.AddressFieldError
		coupErr  *orders.CouponInvalidError
		sizeErr  *cart.SizeUnavailableError
		gwErr    *payments.GatewayError
	)

	switch {
	case errors.As(err, &stockErr),
		errors.As(err, &transErr),
		errors.As(err, &addrErr),
		errors.As(err, &coupErr),
		errors.As(err, &sizeErr),
		errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrCouponExhausted),
		errors.Is(err, orders.ErrBadPaymentMethod),
		errors.Is(err, orders.ErrWrongPaymentMethod),
		errors.Is(err, orders.ErrAlreadyPaid),
		errors.Is(err, orders.ErrSignatureMismatch),
		errors.Is(err, cart.ErrBadQuantity):
		message(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, orders.ErrNotOwner):
		message(w, http.StatusForbidden, "Not authorized to access this order")

	case errors.As(err, &prodErr),
		errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, coupon.ErrNotFound):
		message(w, http.StatusNotFound, err.Error())

	case errors.As(err, &gwErr):
		message(w, http.StatusInternalServerError, "Payment gateway error: "+gwErr.Description)

	default:
		log.Printf("internal error: %v", err)
		message(w, http.StatusInternalServerError, "Server error")
	}
}
