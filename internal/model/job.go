// Package model defines domain entities for the application.
package model

import (
	"slices"
	"time"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusActive  JobStatus = "active"
	JobStatusFilled  JobStatus = "filled"
	JobStatusExpired JobStatus = "expired"
)

// IsValid checks if the job status is a known value.
func (s JobStatus) IsValid() bool {
	return s == JobStatusActive || s == JobStatusFilled || s == JobStatusExpired
}

// Job represents a job posting owned by an employer.
type Job struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Location    string     `json:"location,omitempty"`
	IsRemote    bool       `json:"is_remote"`
	Deadline    time.Time  `json:"deadline"`
	Budget      *float64   `json:"budget,omitempty"`
	MediaURLs   []string   `json:"media_urls"`
	EmployerID  string     `json:"employer_id"`
	Applicants  []string   `json:"applicants"`
	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsOpen returns true if the job is still accepting applications.
// Expiration is not enforced automatically; the deadline is checked
// only at apply time.
func (j *Job) IsOpen() bool {
	return j.Status == JobStatusActive
}

// DeadlinePassed reports whether the application deadline is behind now.
func (j *Job) DeadlinePassed(now time.Time) bool {
	return j.Deadline.Before(now)
}

// HasApplicant checks whether the given user is already in the applicant set.
func (j *Job) HasApplicant(userID string) bool {
	return slices.Contains(j.Applicants, userID)
}

// OwnedBy checks whether the given user created this posting.
func (j *Job) OwnedBy(userID string) bool {
	return j.EmployerID == userID
}
