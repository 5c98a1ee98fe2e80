package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/handler/dto"
	"github.com/workhive/workhive/internal/media"
	"github.com/workhive/workhive/internal/repository"
	"github.com/workhive/workhive/internal/service"
)

// mediaFormField is the multipart field carrying job attachments.
const mediaFormField = "media"

// multipartMemoryLimit bounds in-memory parsing of multipart forms;
// larger parts spill to temporary files.
const multipartMemoryLimit = 4 << 20

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	svc    *service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/jobs. The body is multipart form data so
// media attachments ride along with the posting fields.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Expected multipart form data")
		return
	}

	input := service.CreateJobInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		RawTags:     r.FormValue("tags"),
		Location:    r.FormValue("location"),
	}

	if v := r.FormValue("is_remote"); v != "" {
		input.IsRemote, _ = strconv.ParseBool(v)
	}
	if v := r.FormValue("deadline"); v != "" {
		deadline, err := parseDeadline(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_DEADLINE", "Deadline must be an RFC 3339 timestamp or YYYY-MM-DD date")
			return
		}
		input.Deadline = deadline
	}
	if v := r.FormValue("budget"); v != "" {
		budget, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BUDGET", "Budget must be a number")
			return
		}
		input.Budget = &budget
	}
	if r.MultipartForm != nil {
		input.Files = r.MultipartForm.File[mediaFormField]
	}

	job, err := h.svc.CreateJob(r.Context(), caller, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_created",
		"job_id", job.ID,
		"employer_id", job.EmployerID,
		"media_count", len(job.MediaURLs),
	)

	writeJSON(w, http.StatusCreated, dto.ToJobResponse(job))
}

// List handles GET /api/v1/jobs.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListJobs(r.Context(), jobFilterFromQuery(r.URL.Query()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToJobListResponse(jobs))
}

// Get handles GET /api/v1/jobs/{id}.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	job, err := h.svc.GetJob(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToJobResponse(job))
}

// ListForEmployer handles GET /api/v1/employers/{id}/jobs.
func (h *JobHandler) ListForEmployer(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())

	employerID := chi.URLParam(r, "id")
	if employerID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Employer ID is required")
		return
	}

	jobs, err := h.svc.ListEmployerJobs(r.Context(), caller, employerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToJobListResponse(jobs))
}

// Update handles PATCH /api/v1/jobs/{id}. Accepts either a JSON body
// or multipart form data when new media is attached.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	var input service.UpdateJobInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form data")
			return
		}
		parsed, err := updateInputFromForm(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FORM", err.Error())
			return
		}
		input = parsed
	} else {
		var req dto.UpdateJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
			return
		}
		input = service.UpdateJobInput{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			RawTags:     req.Tags,
			Location:    req.Location,
			IsRemote:    req.IsRemote,
			Deadline:    req.Deadline,
			Budget:      req.Budget,
			Status:      req.Status,
		}
	}

	job, err := h.svc.UpdateJob(r.Context(), caller, id, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_updated", "job_id", job.ID)

	writeJSON(w, http.StatusOK, dto.ToJobResponse(job))
}

// Delete handles DELETE /api/v1/jobs/{id}.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	if err := h.svc.DeleteJob(r.Context(), caller, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_deleted", "job_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// jobFilterFromQuery maps listing query parameters onto a repository
// filter. applied_by restricts the result to jobs the user applied to
// and takes precedence over every other parameter.
func jobFilterFromQuery(query url.Values) repository.JobFilter {
	filter := repository.JobFilter{
		ID:         query.Get("job_id"),
		Category:   query.Get("category"),
		Location:   query.Get("location"),
		EmployerID: query.Get("employer_id"),
		AppliedBy:  query.Get("applied_by"),
	}

	if tags := query.Get("tags"); tags != "" {
		filter.Tags = service.NormalizeTags(tags, nil)
	}
	if v := query.Get("is_remote"); v != "" {
		if remote, err := strconv.ParseBool(v); err == nil {
			filter.IsRemote = &remote
		}
	}
	if v := query.Get("deadline_after"); v != "" {
		if t, err := parseDeadline(v); err == nil {
			filter.DeadlineAfter = &t
		}
	}

	return filter
}

// updateInputFromForm builds a patch from multipart form values.
// Only fields present in the form end up in the patch.
func updateInputFromForm(r *http.Request) (service.UpdateJobInput, error) {
	var input service.UpdateJobInput

	form := r.MultipartForm
	if form == nil {
		return input, errors.New("missing form data")
	}

	stringField := func(name string) *string {
		if values, ok := form.Value[name]; ok && len(values) > 0 {
			return &values[0]
		}
		return nil
	}

	input.Title = stringField("title")
	input.Description = stringField("description")
	input.Category = stringField("category")
	input.RawTags = stringField("tags")
	input.Location = stringField("location")
	input.Status = stringField("status")

	if v := stringField("is_remote"); v != nil {
		remote, err := strconv.ParseBool(*v)
		if err != nil {
			return input, errors.New("is_remote must be a boolean")
		}
		input.IsRemote = &remote
	}
	if v := stringField("deadline"); v != nil {
		deadline, err := parseDeadline(*v)
		if err != nil {
			return input, errors.New("deadline must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		input.Deadline = &deadline
	}
	if v := stringField("budget"); v != nil {
		budget, err := strconv.ParseFloat(*v, 64)
		if err != nil {
			return input, errors.New("budget must be a number")
		}
		input.Budget = &budget
	}

	input.Files = form.File[mediaFormField]

	return input, nil
}

// parseDeadline accepts RFC 3339 timestamps and bare dates.
func parseDeadline(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// handleServiceError maps job service errors to HTTP responses.
func (h *JobHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found")
	case errors.Is(err, service.ErrNotEmployer):
		writeError(w, http.StatusForbidden, "NOT_EMPLOYER", err.Error())
	case errors.Is(err, service.ErrNotJobOwner):
		writeError(w, http.StatusForbidden, "NOT_JOB_OWNER", err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, service.ErrMissingJobFields):
		writeError(w, http.StatusBadRequest, "MISSING_JOB_FIELDS", err.Error())
	case errors.Is(err, service.ErrInvalidJobStatus):
		writeError(w, http.StatusBadRequest, "INVALID_JOB_STATUS", err.Error())
	case errors.Is(err, media.ErrFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, media.ErrUnsupportedFileType):
		writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE", err.Error())
	case errors.Is(err, media.ErrTooManyFiles):
		writeError(w, http.StatusBadRequest, "TOO_MANY_FILES", err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
