// AngelaMos | 2026
// metrics_test.go

package metrics

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLockSession(t *testing.T) {
	before := testutil.CollectAndCount(LockSessionDuration)

	RecordLockSession("main", "test.op", "ok", time.Now().Add(-10*time.Millisecond))

	assert.GreaterOrEqual(t, testutil.CollectAndCount(LockSessionDuration), before)
	assert.Positive(t, testutil.CollectAndCount(LockSessionDuration))
}

func TestDBCollectorCollect(t *testing.T) {
	c := NewDBCollector(map[string]func() sql.DBStats{
		"main": func() sql.DBStats {
			return sql.DBStats{OpenConnections: 7, InUse: 3, Idle: 4, WaitCount: 2}
		},
		"transactions": nil,
	})

	c.Collect()

	assert.InDelta(t, 7, testutil.ToFloat64(DBConnectionsOpen.WithLabelValues("main")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(DBConnectionsInUse.WithLabelValues("main")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(DBConnectionsIdle.WithLabelValues("main")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(DBConnectionsWaitCount.WithLabelValues("main")), 0)
}

func TestHTTPMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	HTTPMiddleware(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.InDelta(t, 1,
		testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "418")), 0)
}

func TestHandlerExposesAppInfo(t *testing.T) {
	Init("1.2.3", "test")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "pragati_app_info"))
}
