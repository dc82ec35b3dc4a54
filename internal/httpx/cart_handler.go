package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/Deoshabh/weBazaar-sub000/internal/cart"
	"github.com/go-chi/chi/v5"
)

type CartService interface {
	Get(ctx context.Context, userID string) (cart.Summary, error)
	Add(ctx context.Context, userID, productID, size, color string, qty int) (cart.Summary, error)
	SetQuantity(ctx context.Context, userID, productID, size string, qty int) (cart.Summary, error)
	Remove(ctx context.Context, userID, productID, size string) (cart.Summary, error)
	Clear(ctx context.Context, userID string) (cart.Summary, error)
}

type CartHandler struct {
	Service CartService
}

func (h *CartHandler) Register(r chi.Router) {
	r.Get("/cart", h.get)
	r.Post("/cart", h.add)
	r.Put("/cart/items", h.setQuantity)
	r.Delete("/cart/{productID}/{size}", h.remove)
	r.Delete("/cart", h.clear)
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	sum, err := h.Service.Get(ctx, UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Size      string `json:"size"`
		Color     string `json:"color"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		message(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" || req.Size == "" {
		message(w, http.StatusBadRequest, "Product ID and size are required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	sum, err := h.Service.Add(ctx, UserID(r), req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Size      string `json:"size"`
		Quantity  *int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		message(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" || req.Size == "" || req.Quantity == nil {
		message(w, http.StatusBadRequest, "Product ID, size, and quantity are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	sum, err := h.Service.SetQuantity(ctx, UserID(r), req.ProductID, req.Size, *req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	size := chi.URLParam(r, "size")
	if s, err := url.PathUnescape(size); err == nil {
		size = s
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	sum, err := h.Service.Remove(ctx, UserID(r), productID, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	sum, err := h.Service.Clear(ctx, UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
