package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Deoshabh/weBazaar-sub000/internal/coupon"
	"github.com/go-chi/chi/v5"
)

type CouponService interface {
	Validate(ctx context.Context, code string, subtotalCents int64, userID string) (coupon.Result, error)
}

type CouponHandler struct {
	Service CouponService
}

func (h *CouponHandler) Register(r chi.Router) {
	r.Post("/coupons/validate", h.validate)
}

func (h *CouponHandler) validate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code           string `json:"code"`
		CartTotalCents int64  `json:"cartTotal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		message(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	res, err := h.Service.Validate(ctx, req.Code, req.CartTotalCents, UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if !res.Valid {
		code := http.StatusBadRequest
		if !res.Found {
			code = http.StatusNotFound
		}
		writeJSON(w, code, map[string]any{"success": false, "message": res.Message})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"coupon": map[string]any{
			"code":     res.Coupon.Code,
			"type":     res.Coupon.Type,
			"value":    res.Coupon.Value,
			"discount": res.DiscountCents,
		},
	})
}
