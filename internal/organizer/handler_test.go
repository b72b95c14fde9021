// AngelaMos | 2026
// handler_test.go

package organizer_test

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
	"github.com/attorneywenn/Pragati-Backend-2025/internal/organizer"
)

func passthrough(next http.Handler) http.Handler { return next }

func router(svc *organizer.Service) http.Handler {
	r := chi.NewRouter()
	organizer.NewHandler(svc).RegisterAdminRoutes(r, passthrough, passthrough)
	return r
}

func send(t *testing.T, h http.Handler, body string) (int, core.Envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, "/admin/organizers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env core.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestHandlerUpdate(t *testing.T) {
	svc, _, repo := newService()
	repo.On("Exists", mock.Anything, 4).Return(true, nil)
	repo.On("Update", mock.Anything, 4, details).Return(int64(1), nil)

	code, env := send(t, router(svc),
		`{"organizerID":4,"organizerName":"Priya Menon","phoneNumber":"9876543210"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Organizer updated successfully.", env.Message)
	assert.Equal(t, map[string]any{
		"organizerID":   float64(4),
		"organizerName": "Priya Menon",
		"phoneNumber":   "9876543210",
	}, env.Data)
}

func TestHandlerUpdateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"organizerID":`},
		{name: "missing id", body: `{"organizerName":"Priya Menon","phoneNumber":"9876543210"}`},
		{name: "missing name", body: `{"organizerID":4,"phoneNumber":"9876543210"}`},
		{name: "bad phone", body: `{"organizerID":4,"organizerName":"Priya Menon","phoneNumber":"call me"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pool, _ := newService()

			code, env := send(t, router(svc), tt.body)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
			assert.Equal(t, 0, pool.Acquired())
		})
	}
}
