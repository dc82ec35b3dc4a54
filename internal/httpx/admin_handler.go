package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Deoshabh/weBazaar-sub000/internal/orders"
	"github.com/go-chi/chi/v5"
)

type AdminOrderService interface {
	UpdateStatus(ctx context.Context, id string, to orders.Status) (*orders.Order, error)
}

type NotificationFeed interface {
	Recent(ctx context.Context, n int64) ([]json.RawMessage, error)
}

type AdminHandler struct {
	Orders AdminOrderService
	Feed   NotificationFeed
}

func (h *AdminHandler) Register(r chi.Router) {
	r.Patch("/admin/orders/{id}/status", h.updateStatus)
	r.Get("/admin/notifications", h.notifications)
}

func (h *AdminHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		message(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Status == "" {
		message(w, http.StatusBadRequest, "Status is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Orders.UpdateStatus(ctx, chi.URLParam(r, "id"), orders.Status(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (h *AdminHandler) notifications(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	events, err := h.Feed.Recent(ctx, n)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"count":         len(events),
		"notifications": events,
	})
}
