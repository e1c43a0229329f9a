package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest_LabelsStatus(t *testing.T) {
	r := New()
	r.ObserveRequest("/optimize", 200, 10*time.Millisecond)
	r.ObserveRequest("/optimize", 0, time.Millisecond)
	r.ObserveRequest("/optimize", 200, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.UpstreamRequests.WithLabelValues("/optimize", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.UpstreamRequests.WithLabelValues("/optimize", "error")))
}

func TestRecordViewRunAndCache(t *testing.T) {
	r := New()
	r.RecordViewRun("optimize", "success")
	r.RecordCacheHit("charts")
	r.RecordCacheMiss("charts")
	r.RecordCacheMiss("charts")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.ViewRuns.WithLabelValues("optimize", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheHits.WithLabelValues("charts")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.CacheMisses.WithLabelValues("charts")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	r := New()
	r.ObserveHTTP("GET", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), "allocation_lab_http_requests_total"))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordCacheHit("x")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CacheHits.WithLabelValues("x")))
}
