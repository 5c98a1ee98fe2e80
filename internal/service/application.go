package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/metrics"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/repository"
)

// Application service errors.
var (
	ErrNotEmployee          = errors.New("only employees can apply for jobs")
	ErrJobClosed            = errors.New("job is no longer accepting applications")
	ErrDeadlinePassed       = errors.New("application deadline has passed")
	ErrDuplicateApplication = errors.New("already applied for this job")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrInvalidStatus        = errors.New("invalid application status")
	ErrTerminalStatus       = errors.New("application status is final and cannot change")
)

// ApplicationService is the single entry point for the application
// lifecycle: one apply path, one set of invariants.
type ApplicationService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(repo *repository.Repository, recorder metrics.Recorder) *ApplicationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ApplicationService{
		repo:    repo,
		metrics: recorder,
	}
}

// Apply submits one application for the calling employee. Checks run in
// order: role, job existence, job open, deadline, duplicate. The insert
// and the applicant-set append commit in one transaction; the unique
// index on (job, applicant) closes the race between concurrent
// submissions.
func (s *ApplicationService) Apply(ctx context.Context, caller *auth.Identity, jobID, resumeURL string) (*model.Application, error) {
	if !caller.IsEmployee() {
		return nil, ErrNotEmployee
	}

	job, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	if !job.IsOpen() {
		s.metrics.IncApplicationRejectedAtGate("closed")
		return nil, ErrJobClosed
	}

	now := time.Now().UTC()
	if job.DeadlinePassed(now) {
		s.metrics.IncApplicationRejectedAtGate("deadline")
		return nil, ErrDeadlinePassed
	}

	if job.HasApplicant(caller.UserID) {
		s.metrics.IncApplicationRejectedAtGate("duplicate")
		return nil, ErrDuplicateApplication
	}

	// Fall back to the applicant's stored resume when none is attached.
	if resumeURL == "" {
		if user, err := s.repo.GetUserByID(ctx, caller.UserID); err == nil {
			resumeURL = user.ResumeURL()
		}
	}

	app := &model.Application{
		ID:          ulid.Make().String(),
		JobID:       job.ID,
		ApplicantID: caller.UserID,
		ResumeURL:   resumeURL,
		Rating:      0,
		Status:      model.ApplicationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.SubmitApplication(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			s.metrics.IncApplicationRejectedAtGate("duplicate")
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}

	s.metrics.IncApplicationSubmitted()

	return app, nil
}

// ListMine retrieves the caller's applications joined with their jobs.
func (s *ApplicationService) ListMine(ctx context.Context, caller *auth.Identity) ([]*model.ApplicationWithJob, error) {
	return s.repo.ListApplicationsByApplicant(ctx, caller.UserID)
}

// ListForJob retrieves a job's applications joined with applicant
// profiles. Only the owning employer may read them.
func (s *ApplicationService) ListForJob(ctx context.Context, caller *auth.Identity, jobID string) ([]*model.ApplicationWithApplicant, error) {
	job, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	if !job.OwnedBy(caller.UserID) {
		return nil, ErrNotJobOwner
	}

	return s.repo.ListApplicationsByJob(ctx, jobID)
}

// SetStatus moves an application to a new review status. Only the
// employer owning the application's job may decide; accepted and
// rejected are terminal.
func (s *ApplicationService) SetStatus(ctx context.Context, caller *auth.Identity, applicationID string, status model.ApplicationStatus) (*model.Application, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	app, err := s.repo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	job, err := s.repo.GetJobByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	if !job.OwnedBy(caller.UserID) {
		return nil, ErrNotJobOwner
	}

	if !app.Status.CanTransitionTo(status) {
		return nil, ErrTerminalStatus
	}

	if app.Status == status {
		return app, nil
	}

	updated, err := s.repo.UpdateApplicationStatus(ctx, applicationID, status)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	s.metrics.IncApplicationStatusChanged(string(status))

	return updated, nil
}
