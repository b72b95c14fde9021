// AngelaMos | 2026
// handler_test.go

package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/health"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func serve(h *health.Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadinessAllHealthy(t *testing.T) {
	h := health.NewHandler(
		health.Dependency{Name: "main", Checker: pinger{}},
		health.Dependency{Name: "transactions", Checker: pinger{}},
		health.Dependency{Name: "redis", Checker: pinger{}},
	)

	rec := serve(h, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body health.ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	require.Len(t, body.Checks, 3)
	assert.Equal(t, "transactions", body.Checks[1].Name)
}

func TestReadinessDegraded(t *testing.T) {
	h := health.NewHandler(
		health.Dependency{Name: "main", Checker: pinger{}},
		health.Dependency{Name: "transactions", Checker: pinger{err: errors.New("down")}},
		health.Dependency{Name: "redis"},
	)

	rec := serve(h, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body health.ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.True(t, body.Checks[0].Healthy)
	assert.False(t, body.Checks[1].Healthy)
	assert.Equal(t, "redis checker not configured", body.Checks[2].Message)
}

func TestLivenessDuringShutdown(t *testing.T) {
	h := health.NewHandler()
	assert.Equal(t, http.StatusOK, serve(h, "/healthz").Code)

	h.SetShutdown(true)
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, "/livez").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, "/readyz").Code)
}

func TestReadinessNotReady(t *testing.T) {
	h := health.NewHandler(health.Dependency{Name: "main", Checker: pinger{}})
	h.SetReady(false)

	assert.Equal(t, http.StatusServiceUnavailable, serve(h, "/readyz").Code)
}
