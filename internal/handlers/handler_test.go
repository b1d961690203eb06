package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"account_ledger/internal/service"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestMetrics_CountsRequestsByRoute(t *testing.T) {
	r := newTestRouter(&service.Service{})

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()

	for _, want := range []string{
		`ledger_http_requests_total{method="GET",route="/health",status="200"} 2`,
		`ledger_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
		`ledger_http_request_duration_seconds_bucket`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q:\n%s", want, body)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	o := Options{}.withDefaults()
	if o.CookieName != defaultCookieName || o.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", o)
	}
	if o.LoginRatePerMinute != defaultLoginRatePerMinute || o.LoginBurst != defaultLoginBurst {
		t.Fatalf("unexpected limiter defaults: %+v", o)
	}
}

func TestIPLimiter_PerClientBuckets(t *testing.T) {
	l := newIPLimiter(60, 1)

	if !l.allow("10.0.0.1") {
		t.Fatal("first request from 10.0.0.1 must pass")
	}
	if l.allow("10.0.0.1") {
		t.Fatal("second immediate request from 10.0.0.1 must be throttled")
	}
	if !l.allow("10.0.0.2") {
		t.Fatal("another client has its own bucket")
	}
}

func TestIPLimiter_PrunesIdleClients(t *testing.T) {
	l := newIPLimiter(60, 1)
	l.allow("10.0.0.1")

	l.mu.Lock()
	l.clients["10.0.0.1"].lastSeen = time.Now().Add(-2 * idleLimiterTTL)
	l.lastPrune = time.Now().Add(-2 * idleLimiterTTL)
	l.mu.Unlock()

	if !l.allow("10.0.0.2") {
		t.Fatal("new client must pass")
	}
	l.mu.Lock()
	_, stale := l.clients["10.0.0.1"]
	l.mu.Unlock()
	if stale {
		t.Fatal("idle client should have been pruned")
	}
}
