package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AmeyKuradeAK/nuventa/internal/service"
	"github.com/AmeyKuradeAK/nuventa/pkg/httputil"
	"github.com/AmeyKuradeAK/nuventa/pkg/pagination"
)

// ProductHandler handles read-only catalog endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/products
// Supported query parameters: category, latest, slug, page, per_page.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := service.ProductQuery{
		Slug:     r.URL.Query().Get("slug"),
		Category: r.URL.Query().Get("category"),
		Params:   pagination.FromRequest(r),
	}

	if v := r.URL.Query().Get("latest"); v != "" {
		latest, err := strconv.ParseBool(v)
		if err == nil {
			q.Latest = &latest
		}
	}

	products, err := h.service.Query(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// Get handles GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}
