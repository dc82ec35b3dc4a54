package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Deoshabh/weBazaar-sub000/internal/catalog"
	"github.com/Deoshabh/weBazaar-sub000/internal/redisx"
	"github.com/go-chi/chi/v5"
)

type ProductLister interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

type ProductsHandler struct {
	Repo  ProductLister
	Cache *redisx.Cache
}

func (h *ProductsHandler) Register(r chi.Router) {
	r.Get("/products", h.list)
}

// list is cache-aside: serve the cached body when present, otherwise
// hit the database and repopulate. Stock movements invalidate the key.
func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Cache != nil {
		if body, ok := h.Cache.GetProductList(ctx); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(body))
			return
		}
	}

	ps, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := json.Marshal(ps)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Cache != nil {
		h.Cache.SetProductList(ctx, string(b))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
