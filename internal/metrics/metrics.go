// AngelaMos | 2026
// metrics.go

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pragati"

// Registry holds every metric the service exports. It is private so tests
// and the /metrics handler never see default-registry globals.
var Registry = prometheus.NewRegistry()

var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always 1)",
	},
	[]string{"version", "environment"},
)

// Lock session metrics
var (
	LockSessionDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lock_session_duration_seconds",
			Help:      "Time from connection checkout to release for a lock session",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"store", "operation", "outcome"},
	)

	LockSessionsInFlight = promauto.With(Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lock_sessions_in_flight",
			Help:      "Lock sessions currently holding a pooled connection",
		},
		[]string{"store"},
	)

	ConnAcquireFailures = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conn_acquire_failures_total",
			Help:      "Connection checkouts that failed before a session started",
		},
		[]string{"store"},
	)
)

func Init(version, environment string) {
	AppInfo.WithLabelValues(version, environment).Set(1)
}

func RegisterRuntimeCollectors() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordLockSession observes one finished session. Call it with defer:
//
//	start := time.Now()
//	defer func() { metrics.RecordLockSession("main", op, outcome, start) }()
func RecordLockSession(store, operation, outcome string, start time.Time) {
	LockSessionDuration.
		WithLabelValues(store, operation, outcome).
		Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
