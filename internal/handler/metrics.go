package handler

import (
	"fmt"
	"net/http"

	"github.com/workhive/workhive/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "workhive_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "workhive_logins_total{result=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "workhive_logins_total{result=\"failure\"} %d\n", snap.LoginsFailed)

	writeMetric(w, "workhive_jobs_created_total %d\n", snap.JobsCreated)
	writeMetric(w, "workhive_jobs_updated_total %d\n", snap.JobsUpdated)
	writeMetric(w, "workhive_jobs_deleted_total %d\n", snap.JobsDeleted)

	writeMetric(w, "workhive_applications_submitted_total %d\n", snap.ApplicationsSubmitted)
	writeMetric(w, "workhive_applications_gated_total %d\n", snap.ApplicationsGated)
	writeMetric(w, "workhive_application_status_changes_total %d\n", snap.StatusChanges)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
