package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/workhive/workhive/internal/metrics"
)

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()
	rec.IncJobCreated()
	rec.IncApplicationSubmitted()
	rec.IncApplicationSubmitted()
	rec.IncApplicationRejectedAtGate("duplicate")

	h := NewMetricsHandler(rec)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	h.Metrics(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}

	body := rr.Body.String()
	for _, want := range []string{
		"workhive_jobs_created_total 1",
		"workhive_applications_submitted_total 2",
		"workhive_applications_gated_total 1",
		"workhive_logins_total{result=\"success\"} 0",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestMetricsEndpointWithoutSnapshotter(t *testing.T) {
	t.Parallel()

	h := NewMetricsHandler(nil)

	rr := httptest.NewRecorder()
	h.Metrics(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}
