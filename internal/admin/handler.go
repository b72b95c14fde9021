// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

// StoreProbe exposes one database pool to the stats endpoints.
type StoreProbe struct {
	Name  string
	Stats func() sql.DBStats
	Ping  func(ctx context.Context) error
}

type HandlerConfig struct {
	Stores     []StoreProbe
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
}

type Handler struct {
	service    *Service
	validator  *validator.Validate
	stores     []StoreProbe
	redisStats func() *redis.PoolStats
	redisPing  func(ctx context.Context) error
}

func NewHandler(service *Service, cfg HandlerConfig) *Handler {
	return &Handler{
		service:    service,
		validator:  validator.New(validator.WithRequiredStructEnabled()),
		stores:     cfg.Stores,
		redisStats: cfg.RedisStats,
		redisPing:  cfg.RedisPing,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/transactions", h.ListTransactions)
		r.Get("/transactions/{txnID}", h.GetTransaction)
		r.Get("/roles", h.ListRoles)
		r.Post("/roles", h.CreateRole)
		r.Get("/revenue", h.EventRevenue)
		r.Get("/users", h.ListAllUsers)
		r.Put("/users/status", h.ChangeAccountStatus)
		r.Put("/users/role", h.ChangeUserRole)
		r.Get("/events/{eventID}/students", h.EventRoster)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
	})
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.service.ListTransactions(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, "All transactions fetched successfully",
		ToTransactionResponseList(txns))
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := h.service.GetTransaction(r.Context(), chi.URLParam(r, "txnID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToTransactionResponse(txn))
}

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, "All roles fetched successfully", ToRoleResponseList(roles))
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	role, err := h.service.CreateRole(r.Context(), req.RoleID, req.RoleName)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, "New user role added successfully.", ToRoleResponse(role))
}

func (h *Handler) EventRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.service.EventRevenue(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, "Amount generated by all events fetched successfully",
		ToEventRevenueResponseList(revenue))
}

func (h *Handler) ListAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListAllUsers(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if len(users) == 0 {
		core.OKMessage(w, "No users found", nil)
		return
	}

	core.OKMessage(w, "Fetched all users", user.ToUserWithEventsResponseList(users))
}

func (h *Handler) ChangeAccountStatus(w http.ResponseWriter, r *http.Request) {
	var req ChangeAccountStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	change, err := h.service.ChangeAccountStatus(
		r.Context(),
		req.StudentID,
		user.AccountStatus(*req.AccountStatus),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, "User account status updated successfully.", StatusChangeResponse{
		StudentID:     change.UserID,
		AccountStatus: change.AccountStatus,
	})
}

func (h *Handler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	var req ChangeUserRoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	change, err := h.service.ChangeUserRole(r.Context(), req.StudentID, req.RoleID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OKMessage(w, "User role updated successfully.", RoleChangeResponse{
		StudentID: change.UserID,
		RoleID:    change.RoleID,
	})
}

func (h *Handler) EventRoster(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil || eventID <= 0 {
		core.BadRequest(w, "eventID must be a positive integer")
		return
	}

	roster, err := h.service.EventRoster(r.Context(), eventID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if roster.Empty() {
		core.OKMessage(w, "No students found for given event", nil)
		return
	}

	core.OKMessage(w, "Students selected successfully.", ToRosterResponse(roster))
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
