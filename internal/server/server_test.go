// AngelaMos | 2026
// server_test.go

package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/config"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/health"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/server"
)

func TestShutdownFlipsReadiness(t *testing.T) {
	h := health.NewHandler()
	srv := server.New(server.Config{
		ServerConfig:  config.ServerConfig{Host: "127.0.0.1", Port: 0},
		HealthHandler: h,
		Logger:        zerolog.Nop(),
	})
	h.RegisterRoutes(srv.Router())

	require.NoError(t, srv.Shutdown(context.Background(), 0))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestShutdownHonoursContext(t *testing.T) {
	srv := server.New(server.Config{Logger: zerolog.Nop()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.Shutdown(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	srv := server.New(server.Config{Logger: zerolog.Nop()})
	srv.Router().Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
