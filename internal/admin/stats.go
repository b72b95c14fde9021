// AngelaMos | 2026
// stats.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"sync"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type SystemStatsResponse struct {
	Databases map[string]DatabaseStatus `json:"databases"`
	Redis     RedisStatus               `json:"redis"`
	Runtime   RuntimeStats              `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Error   string       `json:"error,omitempty"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

// DBPoolStats describes connection checkout pressure. Every lock session
// holds one connection for its whole duration, so in_use is the number
// of sessions in flight and wait_count grows when sessions queue.
type DBPoolStats struct {
	MaxOpenConnections int     `json:"max_open_connections"`
	OpenConnections    int     `json:"open_connections"`
	InUse              int     `json:"in_use"`
	Idle               int     `json:"idle"`
	Saturation         float64 `json:"saturation"`
	WaitCount          int64   `json:"wait_count"`
	WaitDuration       string  `json:"wait_duration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	HeapAlloc    uint64 `json:"heap_alloc_bytes"`
	Sys          uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	redis := RedisStatus{Healthy: true, Stats: h.redisPoolStats()}
	if h.redisPing != nil && h.redisPing(ctx) != nil {
		redis.Healthy = false
	}

	core.OK(w, SystemStatsResponse{
		Databases: h.probeStores(ctx),
		Redis:     redis,
		Runtime:   readRuntimeStats(),
	})
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, _ *http.Request) {
	stats := make(map[string]*DBPoolStats, len(h.stores))
	for _, store := range h.stores {
		stats[store.Name] = poolStats(store.Stats)
	}
	core.OK(w, stats)
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.redisPoolStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, readRuntimeStats())
}

func (h *Handler) probeStores(ctx context.Context) map[string]DatabaseStatus {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]DatabaseStatus, len(h.stores))
	)

	for _, store := range h.stores {
		wg.Go(func() {
			status := DatabaseStatus{Healthy: true, Stats: poolStats(store.Stats)}
			if store.Ping != nil {
				if err := store.Ping(ctx); err != nil {
					status.Healthy = false
					status.Error = "ping failed"
				}
			}

			mu.Lock()
			out[store.Name] = status
			mu.Unlock()
		})
	}
	wg.Wait()

	return out
}

func poolStats(read func() sql.DBStats) *DBPoolStats {
	if read == nil {
		return nil
	}

	s := read()
	out := &DBPoolStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration.String(),
	}
	if s.MaxOpenConnections > 0 {
		out.Saturation = float64(s.InUse) / float64(s.MaxOpenConnections)
	}
	return out
}

func (h *Handler) redisPoolStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	s := h.redisStats()
	return &RedisPoolStats{
		Hits:       s.Hits,
		Misses:     s.Misses,
		Timeouts:   s.Timeouts,
		TotalConns: s.TotalConns,
		IdleConns:  s.IdleConns,
	}
}

func readRuntimeStats() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
	}
}
