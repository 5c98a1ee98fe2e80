// Package model defines domain entities for the application.
package model

import "time"

// ApplicationStatus represents the review state of a job application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsValid checks if the application status is a known value.
func (s ApplicationStatus) IsValid() bool {
	return s == ApplicationPending || s == ApplicationAccepted || s == ApplicationRejected
}

// IsTerminal returns true for statuses that cannot transition further.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// CanTransitionTo reports whether moving from s to next is a legal
// transition. Accepted and rejected are terminal; pending may move to
// any valid status (pending -> pending is a no-op).
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return s == next
	}
	return true
}

// Application records one candidate's application to one job.
// At most one application exists per (job, applicant) pair.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	ApplicantID string            `json:"applicant_id"`
	ResumeURL   string            `json:"resume_url,omitempty"`
	Rating      int               `json:"rating"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ApplicationWithJob is an application joined with its job for
// applicant-facing listings.
type ApplicationWithJob struct {
	Application
	Job *Job `json:"job,omitempty"`
}

// ApplicationWithApplicant is an application joined with its applicant
// for employer-facing listings.
type ApplicationWithApplicant struct {
	Application
	Applicant *User `json:"applicant,omitempty"`
}
