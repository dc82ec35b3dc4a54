package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Deoshabh/weBazaar-sub000/internal/orders"
	"github.com/Deoshabh/weBazaar-sub000/internal/payments"
	"github.com/go-chi/chi/v5"
)

type OrderService interface {
	Place(ctx context.Context, userID string, in orders.PlaceInput) (*orders.Order, error)
	List(ctx context.Context, userID string) ([]orders.Order, error)
	Get(ctx context.Context, userID string, admin bool, id string) (*orders.Order, error)
	Cancel(ctx context.Context, userID string, admin bool, id string) (*orders.Order, error)
	StartPayment(ctx context.Context, userID string, admin bool, id string) (payments.GatewayOrder, error)
	VerifyPayment(ctx context.Context, userID string, admin bool, id string, in orders.VerifyInput) (*orders.Order, error)
}

type OrdersHandler struct {
	Service OrderService
	// RazorpayKeyID is returned to the storefront so it can open the
	// checkout widget.
	RazorpayKeyID string
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/orders", h.create)
	r.Get("/orders", h.list)
	r.Get("/orders/{id}", h.get)
	r.Patch("/orders/{id}/cancel", h.cancel)
	r.Post("/orders/{id}/razorpay", h.startPayment)
	r.Post("/orders/{id}/verify", h.verifyPayment)
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var in orders.PlaceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		message(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Service.Place(ctx, UserID(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "order": order})
}

type orderSummary struct {
	TotalItems  int       `json:"total_items"`
	OrderDate   time.Time `json:"order_date"`
	LastUpdated time.Time `json:"last_updated"`
}

type orderWithSummary struct {
	orders.Order
	Summary orderSummary `json:"summary"`
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Service.List(ctx, UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]orderWithSummary, 0, len(list))
	for _, o := range list {
		out = append(out, orderWithSummary{
			Order: o,
			Summary: orderSummary{
				TotalItems:  o.TotalItems(),
				OrderDate:   o.CreatedAt,
				LastUpdated: o.UpdatedAt,
			},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": len(out), "orders": out})
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	order, err := h.Service.Get(ctx, UserID(r), IsAdmin(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (h *OrdersHandler) cancel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Service.Cancel(ctx, UserID(r), IsAdmin(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

func (h *OrdersHandler) startPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	gw, err := h.Service.StartPayment(ctx, UserID(r), IsAdmin(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"razorpay_order_id": gw.ID,
		"amount":            gw.Amount,
		"currency":          gw.Currency,
		"key":               h.RazorpayKeyID,
	})
}

func (h *OrdersHandler) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var in orders.VerifyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		message(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Service.VerifyPayment(ctx, UserID(r), IsAdmin(r), chi.URLParam(r, "id"), in); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Payment verified successfully"})
}
