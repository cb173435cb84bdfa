package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRefresh(1, true)
	m.StepFailed("balance", "transport")
	m.SetPosition(1, 2)
	m.SetLockRemaining(3)
	m.ActionDone("stake", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveRefresh(0.2, false)
	m.ObserveRefresh(0.3, true)
	m.StepFailed("user", "not_found")
	m.ActionDone("unstake", "LockActive")
	m.SetLockRemaining(86400)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshCycles.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshCycles.WithLabelValues(ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StepFailures.WithLabelValues("user", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("unstake", "LockActive")))
	assert.Equal(t, 86400.0, testutil.ToFloat64(m.LockRemaining))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_reader_refresh_cycles_total")
}
