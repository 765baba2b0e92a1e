package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordsCounters(t *testing.T) {
	m := New()
	m.FetchAttempt(OutcomeRetry)
	m.FetchAttempt(OutcomeSuccess)
	m.FetchAttempt(OutcomeSuccess)
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.ToolCall("get_regions", false)
	m.FetchDuration(150 * time.Millisecond)

	if got := testutil.ToFloat64(m.fetchAttempts.WithLabelValues(OutcomeSuccess)); got != 2 {
		t.Fatalf("expected 2 successful attempts, got %v", got)
	}
	if got := testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")); got != 1 {
		t.Fatalf("expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(m.toolCalls.WithLabelValues("get_regions", "ok")); got != 1 {
		t.Fatalf("expected 1 tool call, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.FetchAttempt(OutcomeFailure)
	m.CacheLookup(true)
	m.ToolCall("x", true)
	m.FetchDuration(time.Second)
	m.InflightAdd(1)
	if m.Registry() != nil {
		t.Fatal("expected nil registry")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.CacheLookup(false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "psgc_cache_lookups_total") {
		t.Fatalf("expected cache lookup metric in output")
	}
}
