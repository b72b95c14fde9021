// AngelaMos | 2026
// handler.go

package notification

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Get("/notifications", h.List)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/notifications", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/", h.Add)
		r.Put("/", h.Update)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ns, err := h.service.List(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if len(ns) == 0 {
		core.OKMessage(w, "No notifications found", nil)
		return
	}

	core.OKMessage(w, "Notifications fetched successfully", ToResponseList(ns))
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if !h.decode(w, r, &req) {
		return
	}

	n, err := h.service.Add(r.Context(), req.Details())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, "Notification added successfully.", ToResponse(n))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if !h.decode(w, r, &req) {
		return
	}

	n, err := h.service.Update(r.Context(), req.NotificationID, req.Details())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, "Notification updated successfully.", ToResponse(n))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}

	return true
}
