// AngelaMos | 2026
// handler_test.go

package notification_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/notification"
)

func passthrough(next http.Handler) http.Handler { return next }

func router(svc *notification.Service) http.Handler {
	r := chi.NewRouter()
	h := notification.NewHandler(svc)
	h.RegisterRoutes(r, passthrough)
	h.RegisterAdminRoutes(r, passthrough, passthrough)
	return r
}

func send(t *testing.T, h http.Handler, method, path, body string) (int, core.Envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env core.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

const addBody = `{
	"title": "Opening ceremony",
	"description": "Main auditorium, all participants",
	"author": "Organising team",
	"venue": "Auditorium",
	"startDate": "2026-02-20T09:00:00Z",
	"endDate": "2026-02-20T11:00:00Z"
}`

func TestHandlerAdd(t *testing.T) {
	svc, _, repo := newService()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(d notification.Details) bool {
		return d.StartDate.Equal(start) && d.Title == "Opening ceremony"
	})).Return(3, nil)

	code, env := send(t, router(svc), http.MethodPost, "/admin/notifications", addBody)

	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Notification added successfully.", env.Message)
	assert.Equal(t, float64(3), env.Data.(map[string]any)["notificationID"])
}

func TestHandlerAddValidation(t *testing.T) {
	svc, pool, _ := newService()

	body := strings.Replace(addBody, "2026-02-20T11:00:00Z", "2026-02-19T11:00:00Z", 1)
	code, env := send(t, router(svc), http.MethodPost, "/admin/notifications", body)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, 0, pool.Acquired())
}

func TestHandlerUpdateRequiresID(t *testing.T) {
	svc, pool, _ := newService()

	code, _ := send(t, router(svc), http.MethodPut, "/admin/notifications", addBody)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 0, pool.Acquired())
}

func TestHandlerListEmpty(t *testing.T) {
	svc, _, repo := newService()
	repo.On("List", mock.Anything).Return([]notification.Notification(nil), nil)

	code, env := send(t, router(svc), http.MethodGet, "/notifications", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "No notifications found", env.Message)
}
