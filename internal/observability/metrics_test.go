package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_ObserveBackend(t *testing.T) {
	c := NewCollector("test")

	c.ObserveBackend("articles.list", nil, 10*time.Millisecond)
	c.ObserveBackend("articles.list", errors.New("boom"), time.Millisecond)
	c.ObserveBackend("articles.list", nil, time.Millisecond)

	if got := testutil.ToFloat64(c.BackendRequests.WithLabelValues("articles.list", OutcomeOK)); got != 2 {
		t.Fatalf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.BackendRequests.WithLabelValues("articles.list", OutcomeError)); got != 1 {
		t.Fatalf("error count = %v, want 1", got)
	}
}

func TestCollector_TabsAndStale(t *testing.T) {
	c := NewCollector("test")
	c.TabOpened()
	c.TabOpened()
	c.TabClosed()
	c.StaleDiscarded()

	if got := testutil.ToFloat64(c.ActiveTabs); got != 1 {
		t.Fatalf("active tabs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.StaleResponses); got != 1 {
		t.Fatalf("stale = %v, want 1", got)
	}
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	c.ObserveBackend("x", nil, time.Second)
	c.ObserveHTTP("GET", "/", "200")
	c.TabOpened()
	c.TabClosed()
	c.StaleDiscarded()
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("travel")
	c.ObserveHTTP("GET", "/health", "200")

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "travel_http_requests_total") {
		t.Fatalf("metric missing from exposition:\n%s", w.Body.String())
	}
}
