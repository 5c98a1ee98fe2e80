package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/workhive/workhive/internal/model"
)

// Common errors for application repository operations.
var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and applicant")
)

const applicationColumns = `id, job_id, applicant_id, resume_url, rating, status, created_at, updated_at`

// SubmitApplication records an application and appends the applicant to
// the job's applicant set in a single transaction. The unique index on
// (job_id, applicant_id) turns a concurrent duplicate into
// ErrDuplicateApplication and rolls back the applicant append.
func (r *Repository) SubmitApplication(ctx context.Context, app *model.Application) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insert,
		app.ID,
		app.JobID,
		app.ApplicantID,
		app.ResumeURL,
		app.Rating,
		string(app.Status),
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	if _, err := tx.Exec(ctx, appendApplicantSQL, app.JobID, app.ApplicantID); err != nil {
		return fmt.Errorf("failed to record applicant on job: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit application: %w", err)
	}

	return nil
}

// GetApplicationByID retrieves an application by its ID.
func (r *Repository) GetApplicationByID(ctx context.Context, id string) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application by ID: %w", err)
	}

	return app, nil
}

// GetApplicationByJobAndApplicant retrieves the application for a
// (job, applicant) pair, if one exists.
func (r *Repository) GetApplicationByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 AND applicant_id = $2`

	app, err := scanApplication(r.pool.QueryRow(ctx, query, jobID, applicantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return app, nil
}

// ListApplicationsByApplicant retrieves a user's applications joined
// with their jobs, newest first.
func (r *Repository) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]*model.ApplicationWithJob, error) {
	query := `
		SELECT a.id, a.job_id, a.applicant_id, a.resume_url, a.rating, a.status, a.created_at, a.updated_at,
		       j.id, j.title, j.description, j.category, j.tags, j.location, j.is_remote, j.deadline,
		       j.budget, j.media_urls, j.employer_id, j.applicants, j.status, j.created_at, j.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.applicant_id = $1
		ORDER BY a.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by applicant: %w", err)
	}
	defer rows.Close()

	var results []*model.ApplicationWithJob
	for rows.Next() {
		entry, err := scanApplicationWithJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		results = append(results, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return results, nil
}

// ListApplicationsByJob retrieves a job's applications joined with the
// applicant profiles, newest first.
func (r *Repository) ListApplicationsByJob(ctx context.Context, jobID string) ([]*model.ApplicationWithApplicant, error) {
	query := `
		SELECT a.id, a.job_id, a.applicant_id, a.resume_url, a.rating, a.status, a.created_at, a.updated_at,
		       u.id, u.full_name, u.email, u.phone_number, u.password_hash, u.role,
		       u.company_name, u.business_registration_number, u.resume_url, u.created_at
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by job: %w", err)
	}
	defer rows.Close()

	var results []*model.ApplicationWithApplicant
	for rows.Next() {
		entry, err := scanApplicationWithApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		results = append(results, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return results, nil
}

// UpdateApplicationStatus overwrites an application's status.
func (r *Repository) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	query := `
		UPDATE applications
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + applicationColumns

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	return app, nil
}

// scanApplication scans a single row into an Application model.
func scanApplication(row pgx.Row) (*model.Application, error) {
	var (
		app    model.Application
		status string
	)

	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.ResumeURL,
		&app.Rating,
		&status,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Status = model.ApplicationStatus(status)
	return &app, nil
}

// scanApplicationWithJob scans an application row joined with its job.
func scanApplicationWithJob(rows pgx.Rows) (*model.ApplicationWithJob, error) {
	var (
		entry      model.ApplicationWithJob
		appStatus  string
		job        model.Job
		tags       []string
		mediaURLs  []string
		applicants []string
		jobStatus  string
	)

	err := rows.Scan(
		&entry.ID,
		&entry.JobID,
		&entry.ApplicantID,
		&entry.ResumeURL,
		&entry.Rating,
		&appStatus,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Category,
		pq.Array(&tags),
		&job.Location,
		&job.IsRemote,
		&job.Deadline,
		&job.Budget,
		pq.Array(&mediaURLs),
		&job.EmployerID,
		pq.Array(&applicants),
		&jobStatus,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Status = model.ApplicationStatus(appStatus)
	job.Tags = tags
	job.MediaURLs = mediaURLs
	job.Applicants = applicants
	job.Status = model.JobStatus(jobStatus)
	entry.Job = &job

	return &entry, nil
}

// scanApplicationWithApplicant scans an application row joined with the
// applicant's user record.
func scanApplicationWithApplicant(rows pgx.Rows) (*model.ApplicationWithApplicant, error) {
	var (
		entry              model.ApplicationWithApplicant
		appStatus          string
		user               model.User
		role               string
		companyName        sql.NullString
		registrationNumber sql.NullString
		resumeURL          sql.NullString
	)

	err := rows.Scan(
		&entry.ID,
		&entry.JobID,
		&entry.ApplicantID,
		&entry.ResumeURL,
		&entry.Rating,
		&appStatus,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&role,
		&companyName,
		&registrationNumber,
		&resumeURL,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Status = model.ApplicationStatus(appStatus)
	user.Role = model.Role(role)
	switch user.Role {
	case model.RoleEmployer:
		user.Employer = &model.EmployerProfile{
			CompanyName:                companyName.String,
			BusinessRegistrationNumber: registrationNumber.String,
		}
	case model.RoleEmployee:
		user.Employee = &model.EmployeeProfile{ResumeURL: resumeURL.String}
	}
	entry.Applicant = &user

	return &entry, nil
}
