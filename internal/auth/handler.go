// AngelaMos | 2026
// handler.go

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/middleware"
)

type Handler struct {
	revocations *Revocations
}

func NewHandler(revocations *Revocations) *Handler {
	return &Handler{revocations: revocations}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/logout", h.Logout)
	})
}

// Logout revokes the bearer token used for this request.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil || claims.TokenID == "" {
		core.JSONError(w, core.TokenInvalidError())
		return
	}

	err := h.revocations.Revoke(r.Context(), claims.TokenID, claims.ExpiresAt)
	if err != nil {
		core.JSONError(w, core.Fault(r.Context(), "auth.Logout", "redis", err))
		return
	}

	core.NoContent(w)
}
