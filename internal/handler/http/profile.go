package http

import (
	"log/slog"
	"net/http"

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/internal/service"
	"github.com/AmeyKuradeAK/nuventa/pkg/httputil"
	"github.com/AmeyKuradeAK/nuventa/pkg/middleware"
	"github.com/AmeyKuradeAK/nuventa/pkg/validator"
)

// ProfileHandler handles the shopper profile endpoints.
type ProfileHandler struct {
	service *service.ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile HTTP handler.
func NewProfileHandler(svc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{service: svc, logger: logger}
}

// Get handles GET /api/v1/profile
// The payload carries the contact fields plus both membership sets,
// which is the storefront's session snapshot and reconciliation source.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	p, err := h.service.Get(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// Update handles PUT /api/v1/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileUpdate
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	p, err := h.service.Update(r.Context(), identity, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}
