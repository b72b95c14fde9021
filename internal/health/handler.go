// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

const probeTimeout = 5 * time.Second

type Checker interface {
	Ping(ctx context.Context) error
}

// Dependency is one named backend that readiness depends on: a database
// store or the Redis client.
type Dependency struct {
	Name    string
	Checker Checker
}

type state int32

const (
	stateServing state = iota
	stateNotReady
	stateDraining
)

type Handler struct {
	deps  []Dependency
	state atomic.Int32
}

func NewHandler(deps ...Dependency) *Handler {
	return &Handler{deps: deps}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) SetReady(ready bool) {
	if ready {
		h.state.CompareAndSwap(int32(stateNotReady), int32(stateServing))
		return
	}
	h.state.CompareAndSwap(int32(stateServing), int32(stateNotReady))
}

// SetShutdown moves the handler into draining. Load balancers see 503 on
// both probes from then on.
func (h *Handler) SetShutdown(shutdown bool) {
	if shutdown {
		h.state.Store(int32(stateDraining))
		return
	}
	h.state.Store(int32(stateServing))
}

func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	if state(h.state.Load()) == stateDraining {
		writeProbe(w, http.StatusServiceUnavailable, StatusResponse{Status: "shutting_down"})
		return
	}
	writeProbe(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	switch state(h.state.Load()) {
	case stateDraining:
		writeProbe(w, http.StatusServiceUnavailable, StatusResponse{Status: "shutting_down"})
		return
	case stateNotReady:
		writeProbe(w, http.StatusServiceUnavailable, StatusResponse{Status: "not_ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	resp := ReadinessResponse{Status: "ok", Checks: h.probe(ctx)}
	code := http.StatusOK
	for _, c := range resp.Checks {
		if !c.Healthy {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	writeProbe(w, code, resp)
}

// probe pings every dependency in parallel. Results keep registration order.
func (h *Handler) probe(ctx context.Context) []HealthCheck {
	checks := make([]HealthCheck, len(h.deps))

	var wg sync.WaitGroup
	for i, dep := range h.deps {
		wg.Go(func() {
			checks[i] = ping(ctx, dep)
		})
	}
	wg.Wait()

	return checks
}

func ping(ctx context.Context, dep Dependency) HealthCheck {
	if dep.Checker == nil {
		return HealthCheck{Name: dep.Name, Message: dep.Name + " checker not configured"}
	}

	start := time.Now()
	err := dep.Checker.Ping(ctx)
	check := HealthCheck{
		Name:    dep.Name,
		Healthy: err == nil,
		Latency: time.Since(start).String(),
	}
	if err != nil {
		check.Message = "ping failed"
	}
	return check
}

func writeProbe(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	core.JSON(w, status, body)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
