package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/internal/service"
	"github.com/AmeyKuradeAK/nuventa/pkg/httputil"
	"github.com/AmeyKuradeAK/nuventa/pkg/middleware"
	"github.com/AmeyKuradeAK/nuventa/pkg/validator"
)

// MembershipHandler handles HTTP requests for the cart and wishlist sets.
type MembershipHandler struct {
	service *service.MembershipService
	logger  *slog.Logger
}

// NewMembershipHandler creates a new membership HTTP handler.
func NewMembershipHandler(svc *service.MembershipService, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{service: svc, logger: logger}
}

// ToggleRequest is the JSON request body for toggling a product id.
type ToggleRequest struct {
	ProductID string `json:"product_id" validate:"required,min=1,max=100"`
	Append    *bool  `json:"append" validate:"required"`
}

// GetJoined handles GET /api/v1/memberships/{set}
func (h *MembershipHandler) GetJoined(w http.ResponseWriter, r *http.Request) {
	set, ok := setFromRequest(w, r)
	if !ok {
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	products, err := h.service.GetJoined(r.Context(), identity, set)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetIDs handles GET /api/v1/memberships/{set}/ids
func (h *MembershipHandler) GetIDs(w http.ResponseWriter, r *http.Request) {
	set, ok := setFromRequest(w, r)
	if !ok {
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	ids, err := h.service.GetIDs(r.Context(), identity, set)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ids})
}

// Toggle handles POST /api/v1/memberships/{set}/toggle
func (h *MembershipHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	set, ok := setFromRequest(w, r)
	if !ok {
		return
	}

	var req ToggleRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	m, err := h.service.Toggle(r.Context(), identity, set, req.ProductID, *req.Append)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: m})
}

func setFromRequest(w http.ResponseWriter, r *http.Request) (domain.SetName, bool) {
	set, err := domain.ParseSetName(chi.URLParam(r, "set"))
	if err != nil {
		httputil.WriteError(w, r, err, nil)
		return "", false
	}
	return set, true
}
