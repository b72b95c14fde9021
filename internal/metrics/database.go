// AngelaMos | 2026
// database.go

package metrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DBConnectionsOpen = promauto.With(Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_open",
			Help:      "Total number of open database connections",
		},
		[]string{"store"},
	)

	DBConnectionsInUse = promauto.With(Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_in_use",
			Help:      "Number of database connections currently checked out",
		},
		[]string{"store"},
	)

	DBConnectionsIdle = promauto.With(Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_idle",
			Help:      "Number of idle database connections",
		},
		[]string{"store"},
	)

	DBConnectionsWaitCount = promauto.With(Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_wait_count",
			Help:      "Cumulative number of checkouts that had to wait for a connection",
		},
		[]string{"store"},
	)
)

// DBCollector periodically copies pool statistics of every store into the
// gauges above.
type DBCollector struct {
	stats    map[string]func() sql.DBStats
	stopChan chan struct{}
}

func NewDBCollector(stats map[string]func() sql.DBStats) *DBCollector {
	return &DBCollector{
		stats:    stats,
		stopChan: make(chan struct{}),
	}
}

func (c *DBCollector) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Collect()

	for {
		select {
		case <-ticker.C:
			c.Collect()
		case <-c.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *DBCollector) Stop() {
	close(c.stopChan)
}

func (c *DBCollector) Collect() {
	for store, statsFn := range c.stats {
		if statsFn == nil {
			continue
		}
		stat := statsFn()

		DBConnectionsOpen.WithLabelValues(store).Set(float64(stat.OpenConnections))
		DBConnectionsInUse.WithLabelValues(store).Set(float64(stat.InUse))
		DBConnectionsIdle.WithLabelValues(store).Set(float64(stat.Idle))
		DBConnectionsWaitCount.WithLabelValues(store).Set(float64(stat.WaitCount))
	}
}
