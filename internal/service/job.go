package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/media"
	"github.com/workhive/workhive/internal/metrics"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/repository"
)

// Job service errors.
var (
	ErrJobNotFound      = errors.New("job not found")
	ErrNotEmployer      = errors.New("only employers can manage job postings")
	ErrNotJobOwner      = errors.New("caller does not own this job")
	ErrForbidden        = errors.New("not authorized")
	ErrMissingJobFields = errors.New("title, description, category and deadline are required")
	ErrInvalidJobStatus = errors.New("invalid job status")
)

// JobService handles job posting business logic.
type JobService struct {
	repo    *repository.Repository
	media   *media.Store
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewJobService creates a new JobService.
func NewJobService(repo *repository.Repository, mediaStore *media.Store, recorder metrics.Recorder, logger *slog.Logger) *JobService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &JobService{
		repo:    repo,
		media:   mediaStore,
		metrics: recorder,
		logger:  logger,
	}
}

// CreateJobInput defines input for creating a job posting.
// Tags accepts either a raw delimited string or a pre-split list.
type CreateJobInput struct {
	Title       string
	Description string
	Category    string
	RawTags     string
	Tags        []string
	Location    string
	IsRemote    bool
	Deadline    time.Time
	Budget      *float64
	Files       []*multipart.FileHeader
}

// CreateJob creates a job posting owned by the calling employer.
func (s *JobService) CreateJob(ctx context.Context, caller *auth.Identity, input CreateJobInput) (*model.Job, error) {
	if !caller.IsEmployer() {
		return nil, ErrNotEmployer
	}

	if input.Title == "" || input.Description == "" || input.Category == "" || input.Deadline.IsZero() {
		return nil, ErrMissingJobFields
	}

	mediaURLs, err := s.media.SaveUploads(input.Files)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &model.Job{
		ID:          ulid.Make().String(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Tags:        NormalizeTags(input.RawTags, input.Tags),
		Location:    input.Location,
		IsRemote:    input.IsRemote,
		Deadline:    input.Deadline,
		Budget:      input.Budget,
		MediaURLs:   mediaURLs,
		EmployerID:  caller.UserID,
		Applicants:  []string{},
		Status:      model.JobStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.metrics.IncJobCreated()

	return job, nil
}

// GetJob retrieves a single job posting.
func (s *JobService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.repo.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	return job, nil
}

// ListJobs retrieves jobs matching the filter, newest first.
func (s *JobService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]*model.Job, error) {
	return s.repo.ListJobs(ctx, filter)
}

// ListEmployerJobs retrieves an employer's postings. A non-employer
// caller may only request their own listings.
func (s *JobService) ListEmployerJobs(ctx context.Context, caller *auth.Identity, employerID string) ([]*model.Job, error) {
	if !caller.IsEmployer() && caller.UserID != employerID {
		return nil, ErrForbidden
	}

	return s.repo.ListJobs(ctx, repository.JobFilter{EmployerID: employerID})
}

// UpdateJobInput defines the patch for updating a job posting.
// Nil pointer fields are left unchanged.
type UpdateJobInput struct {
	Title       *string
	Description *string
	Category    *string
	RawTags     *string
	Tags        []string
	Location    *string
	IsRemote    *bool
	Deadline    *time.Time
	Budget      *float64
	Status      *string
	Files       []*multipart.FileHeader
}

// UpdateJob merges the patch into an existing posting. Only the owning
// employer may update; new media is appended to existing attachments.
func (s *JobService) UpdateJob(ctx context.Context, caller *auth.Identity, jobID string, input UpdateJobInput) (*model.Job, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !job.OwnedBy(caller.UserID) {
		return nil, ErrNotJobOwner
	}

	if input.Title != nil {
		job.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Category != nil {
		job.Category = *input.Category
	}
	if input.RawTags != nil || input.Tags != nil {
		var raw string
		if input.RawTags != nil {
			raw = *input.RawTags
		}
		job.Tags = NormalizeTags(raw, input.Tags)
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.IsRemote != nil {
		job.IsRemote = *input.IsRemote
	}
	if input.Deadline != nil {
		job.Deadline = *input.Deadline
	}
	if input.Budget != nil {
		job.Budget = input.Budget
	}
	if input.Status != nil {
		status := model.JobStatus(*input.Status)
		if !status.IsValid() {
			return nil, ErrInvalidJobStatus
		}
		job.Status = status
	}

	if len(input.Files) > 0 {
		mediaURLs, err := s.media.SaveUploads(input.Files)
		if err != nil {
			return nil, err
		}
		job.MediaURLs = append(job.MediaURLs, mediaURLs...)
	}

	job.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.metrics.IncJobUpdated()

	return job, nil
}

// DeleteJob removes a posting and releases its stored media.
// Media removal is best-effort: a failure is logged, never fatal.
func (s *JobService) DeleteJob(ctx context.Context, caller *auth.Identity, jobID string) error {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	if !job.OwnedBy(caller.UserID) {
		return ErrNotJobOwner
	}

	for _, url := range job.MediaURLs {
		if err := s.media.Remove(url); err != nil {
			s.logger.Warn("failed to remove job media",
				slog.String("job_id", job.ID),
				slog.String("url", url),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.repo.DeleteJob(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.metrics.IncJobDeleted()

	return nil
}

// NormalizeTags merges raw and pre-split tag input into a trimmed,
// deduplicated list preserving first-seen order. Raw input may be a
// comma-delimited string or a JSON array.
func NormalizeTags(raw string, tags []string) []string {
	var parts []string

	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
	case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		if err := json.Unmarshal([]byte(raw), &parts); err != nil {
			parts = strings.Split(raw, ",")
		}
	default:
		parts = strings.Split(raw, ",")
	}
	parts = append(parts, tags...)

	seen := make(map[string]bool, len(parts))
	result := make([]string, 0, len(parts))
	for _, tag := range parts {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}

	return result
}
