package dto

import (
	"time"

	"github.com/workhive/workhive/internal/model"
)

// ApplyRequest represents the request body for applying to a job.
// JobID is taken from the URL on the nested route and from the body on
// POST /applications.
type ApplyRequest struct {
	JobID     string `json:"job_id,omitempty"`
	ResumeURL string `json:"resume_url,omitempty"`
}

// UpdateApplicationStatusRequest represents the request body for a
// status decision.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// ApplicationResponse represents an application in API responses.
type ApplicationResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	ApplicantID string    `json:"applicant_id"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	Rating      int       `json:"rating"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplicationWithJobResponse is an application joined with its job.
type ApplicationWithJobResponse struct {
	ApplicationResponse
	Job *JobResponse `json:"job,omitempty"`
}

// ApplicationWithApplicantResponse is an application joined with the
// applicant's profile.
type ApplicationWithApplicantResponse struct {
	ApplicationResponse
	Applicant *UserResponse `json:"applicant,omitempty"`
}

// ApplicationListResponse represents the caller's application list.
type ApplicationListResponse struct {
	Data  []ApplicationWithJobResponse `json:"data"`
	Count int                          `json:"count"`
}

// JobApplicationListResponse represents a job's application list.
type JobApplicationListResponse struct {
	Data  []ApplicationWithApplicantResponse `json:"data"`
	Count int                                `json:"count"`
}

// ToApplicationResponse converts an application model to its API
// representation.
func ToApplicationResponse(a *model.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		ResumeURL:   a.ResumeURL,
		Rating:      a.Rating,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToApplicationListResponse converts joined application models for the
// applicant-facing list.
func ToApplicationListResponse(apps []*model.ApplicationWithJob) ApplicationListResponse {
	data := make([]ApplicationWithJobResponse, 0, len(apps))
	for _, a := range apps {
		entry := ApplicationWithJobResponse{
			ApplicationResponse: ToApplicationResponse(&a.Application),
		}
		if a.Job != nil {
			job := ToJobResponse(a.Job)
			entry.Job = &job
		}
		data = append(data, entry)
	}
	return ApplicationListResponse{Data: data, Count: len(data)}
}

// ToJobApplicationListResponse converts joined application models for
// the employer-facing list.
func ToJobApplicationListResponse(apps []*model.ApplicationWithApplicant) JobApplicationListResponse {
	data := make([]ApplicationWithApplicantResponse, 0, len(apps))
	for _, a := range apps {
		entry := ApplicationWithApplicantResponse{
			ApplicationResponse: ToApplicationResponse(&a.Application),
		}
		if a.Applicant != nil {
			applicant := ToUserResponse(a.Applicant)
			entry.Applicant = &applicant
		}
		data = append(data, entry)
	}
	return JobApplicationListResponse{Data: data, Count: len(data)}
}
