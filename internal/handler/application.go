package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/handler/dto"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/service"
)

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	svc    *service.ApplicationService
	logger *slog.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(svc *service.ApplicationService, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		svc:    svc,
		logger: logger,
	}
}

// ApplyToJob handles POST /api/v1/jobs/{id}/apply.
// The body is optional; it may carry a resume URL override.
func (h *ApplicationHandler) ApplyToJob(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())

	jobID := chi.URLParam(r, "id")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	req, ok := h.decodeApplyRequest(w, r)
	if !ok {
		return
	}

	h.apply(w, r, caller, jobID, req.ResumeURL)
}

// Apply handles POST /api/v1/applications.
// The job is named in the body; the semantics are identical to the
// nested route.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())

	req, ok := h.decodeApplyRequest(w, r)
	if !ok {
		return
	}
	if req.JobID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_JOB_ID", "job_id is required")
		return
	}

	h.apply(w, r, caller, req.JobID, req.ResumeURL)
}

// apply is the single submission path behind both apply routes.
func (h *ApplicationHandler) apply(w http.ResponseWriter, r *http.Request, caller *auth.Identity, jobID, resumeURL string) {
	app, err := h.svc.Apply(r.Context(), caller, jobID, resumeURL)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("application_submitted",
		"application_id", app.ID,
		"job_id", app.JobID,
		"applicant_id", app.ApplicantID,
	)

	writeJSON(w, http.StatusCreated, dto.ToApplicationResponse(app))
}

// ListMine handles GET /api/v1/applications/mine.
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())

	apps, err := h.svc.ListMine(r.Context(), caller)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToApplicationListResponse(apps))
}

// ListForJob handles GET /api/v1/jobs/{id}/applications.
func (h *ApplicationHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())

	jobID := chi.URLParam(r, "id")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	apps, err := h.svc.ListForJob(r.Context(), caller, jobID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToJobApplicationListResponse(apps))
}

// SetStatus handles PATCH /api/v1/applications/{id}.
func (h *ApplicationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Application ID is required")
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	app, err := h.svc.SetStatus(r.Context(), caller, id, model.ApplicationStatus(req.Status))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("application_status_changed",
		"application_id", app.ID,
		"status", string(app.Status),
	)

	writeJSON(w, http.StatusOK, dto.ToApplicationResponse(app))
}

// decodeApplyRequest reads an optional JSON body. An empty body is
// valid; malformed JSON is not.
func (h *ApplicationHandler) decodeApplyRequest(w http.ResponseWriter, r *http.Request) (dto.ApplyRequest, bool) {
	var req dto.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return req, false
	}
	return req, true
}

// handleServiceError maps application service errors to HTTP responses.
func (h *ApplicationHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotEmployee):
		writeError(w, http.StatusForbidden, "NOT_EMPLOYEE", err.Error())
	case errors.Is(err, service.ErrNotJobOwner):
		writeError(w, http.StatusForbidden, "NOT_JOB_OWNER", err.Error())
	case errors.Is(err, service.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found")
	case errors.Is(err, service.ErrApplicationNotFound):
		writeError(w, http.StatusNotFound, "APPLICATION_NOT_FOUND", "Application not found")
	case errors.Is(err, service.ErrJobClosed):
		writeError(w, http.StatusConflict, "JOB_CLOSED", err.Error())
	case errors.Is(err, service.ErrDeadlinePassed):
		writeError(w, http.StatusUnprocessableEntity, "DEADLINE_PASSED", err.Error())
	case errors.Is(err, service.ErrDuplicateApplication):
		writeError(w, http.StatusConflict, "DUPLICATE_APPLICATION", err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", err.Error())
	case errors.Is(err, service.ErrTerminalStatus):
		writeError(w, http.StatusConflict, "TERMINAL_STATUS", err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
