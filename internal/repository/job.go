package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/workhive/workhive/internal/model"
)

// Common errors for job repository operations.
var (
	ErrJobNotFound = errors.New("job not found")
)

// JobFilter defines filters for listing jobs.
// AppliedBy is exclusive: when set, all other filters are ignored and
// the result is the set of jobs whose applicant list contains the user.
type JobFilter struct {
	ID            string
	EmployerID    string
	Category      string
	Location      string
	Tags          []string
	IsRemote      *bool
	DeadlineAfter *time.Time
	AppliedBy     string
}

const jobColumns = `id, title, description, category, tags, location, is_remote, deadline, budget, media_urls, employer_id, applicants, status, created_at, updated_at`

// CreateJob inserts a new job posting into the database.
func (r *Repository) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Category,
		pq.Array(job.Tags),
		job.Location,
		job.IsRemote,
		job.Deadline,
		job.Budget,
		pq.Array(job.MediaURLs),
		job.EmployerID,
		pq.Array(job.Applicants),
		string(job.Status),
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJobByID retrieves a job by its ID.
func (r *Repository) GetJobByID(ctx context.Context, id string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}

	return job, nil
}

// ListJobs retrieves jobs matching the filter, newest first.
func (r *Repository) ListJobs(ctx context.Context, filter JobFilter) ([]*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	var args []any
	argIndex := 1

	if filter.AppliedBy != "" {
		// Exclusive filter: jobs the given user has applied to.
		query += fmt.Sprintf(" AND applicants @> ARRAY[$%d]::text[]", argIndex)
		args = append(args, filter.AppliedBy)
		argIndex++
	} else {
		if filter.ID != "" {
			query += fmt.Sprintf(" AND id = $%d", argIndex)
			args = append(args, filter.ID)
			argIndex++
		}
		if filter.EmployerID != "" {
			query += fmt.Sprintf(" AND employer_id = $%d", argIndex)
			args = append(args, filter.EmployerID)
			argIndex++
		}
		if filter.Category != "" {
			query += fmt.Sprintf(" AND category = $%d", argIndex)
			args = append(args, filter.Category)
			argIndex++
		}
		if filter.Location != "" {
			query += fmt.Sprintf(" AND location = $%d", argIndex)
			args = append(args, filter.Location)
			argIndex++
		}
		if len(filter.Tags) > 0 {
			// Any-match on tag membership.
			query += fmt.Sprintf(" AND tags && $%d", argIndex)
			args = append(args, pq.Array(filter.Tags))
			argIndex++
		}
		if filter.IsRemote != nil {
			query += fmt.Sprintf(" AND is_remote = $%d", argIndex)
			args = append(args, *filter.IsRemote)
			argIndex++
		}
		if filter.DeadlineAfter != nil {
			query += fmt.Sprintf(" AND deadline >= $%d", argIndex)
			args = append(args, *filter.DeadlineAfter)
			argIndex++
		}
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}

// UpdateJob updates a job's mutable fields.
func (r *Repository) UpdateJob(ctx context.Context, job *model.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, category = $4, tags = $5, location = $6,
		    is_remote = $7, deadline = $8, budget = $9, media_urls = $10,
		    status = $11, updated_at = $12
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Category,
		pq.Array(job.Tags),
		job.Location,
		job.IsRemote,
		job.Deadline,
		job.Budget,
		pq.Array(job.MediaURLs),
		string(job.Status),
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

// DeleteJob removes a job posting.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

// AddApplicant appends an applicant to the job's applicant set.
// Idempotent: an applicant already present is not appended twice.
func (r *Repository) AddApplicant(ctx context.Context, jobID, applicantID string) error {
	tag, err := r.pool.Exec(ctx, appendApplicantSQL, jobID, applicantID)
	if err != nil {
		return fmt.Errorf("failed to add applicant: %w", err)
	}
	_ = tag // zero rows means the applicant was already present

	return nil
}

// appendApplicantSQL adds an applicant only when not already present.
const appendApplicantSQL = `
	UPDATE jobs
	SET applicants = array_append(applicants, $2)
	WHERE id = $1 AND NOT (applicants @> ARRAY[$2]::text[])
`

// scanJob scans a single row into a Job model.
func scanJob(row pgx.Row) (*model.Job, error) {
	var (
		job        model.Job
		tags       []string
		mediaURLs  []string
		applicants []string
		status     string
	)

	err := row.Scan(
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
		&status,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.Tags = tags
	job.MediaURLs = mediaURLs
	job.Applicants = applicants
	job.Status = model.JobStatus(status)

	return &job, nil
}
