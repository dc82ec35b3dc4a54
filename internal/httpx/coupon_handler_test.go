package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Deoshabh/weBazaar-sub000/internal/coupon"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCoupons struct {
	result coupon.Result
}

func (s *stubCoupons) Validate(context.Context, string, int64, string) (coupon.Result, error) {
	return s.result, nil
}

func couponRequest(t *testing.T, svc CouponService, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Use(Identity)
	(&CouponHandler{Service: svc}).Register(r)

	req := httptest.NewRequest(http.MethodPost, "/coupons/validate", strings.NewReader(body))
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestValidateCouponOK(t *testing.T) {
	svc := &stubCoupons{result: coupon.Result{
		Valid:         true,
		Found:         true,
		Message:       "Coupon applied successfully",
		DiscountCents: 500,
		Coupon:        &coupon.Coupon{Code: "SAVE10", Type: coupon.TypePercent, Value: 10},
	}}

	rec := couponRequest(t, svc, `{"code":"SAVE10","cartTotal":5000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Coupon  struct {
			Code     string `json:"code"`
			Type     string `json:"type"`
			Value    int64  `json:"value"`
			Discount int64  `json:"discount"`
		} `json:"coupon"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "SAVE10", body.Coupon.Code)
	assert.Equal(t, int64(500), body.Coupon.Discount)
}

func TestValidateCouponUnknownCodeIs404(t *testing.T) {
	svc := &stubCoupons{result: coupon.Result{Message: "Invalid coupon code"}}
	rec := couponRequest(t, svc, `{"code":"NOPE","cartTotal":5000}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid coupon code")
}

func TestValidateCouponRuleFailureIs400(t *testing.T) {
	svc := &stubCoupons{result: coupon.Result{Found: true, Message: "Coupon has expired"}}
	rec := couponRequest(t, svc, `{"code":"OLD","cartTotal":5000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Coupon has expired")
}

func TestValidateCouponBadJSON(t *testing.T) {
	rec := couponRequest(t, &stubCoupons{}, `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
