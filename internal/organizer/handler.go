// AngelaMos | 2026
// handler.go

package organizer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/organizers", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Put("/", h.Update)
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	o, err := h.service.Update(r.Context(), req.OrganizerID, req.Details())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, "Organizer updated successfully.", ToResponse(o))
}
