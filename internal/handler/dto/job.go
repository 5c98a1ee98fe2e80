package dto

import (
	"time"

	"github.com/workhive/workhive/internal/model"
)

// UpdateJobRequest represents the JSON request body for patching a job
// posting. Nil fields are left unchanged. Multipart updates carry the
// same fields as form values.
type UpdateJobRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Tags        *string    `json:"tags,omitempty"`
	Location    *string    `json:"location,omitempty"`
	IsRemote    *bool      `json:"is_remote,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// JobResponse represents a job posting in API responses.
type JobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Location    string    `json:"location,omitempty"`
	IsRemote    bool      `json:"is_remote"`
	Deadline    time.Time `json:"deadline"`
	Budget      *float64  `json:"budget,omitempty"`
	MediaURLs   []string  `json:"media_urls"`
	EmployerID  string    `json:"employer_id"`
	Applicants  []string  `json:"applicants"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobListResponse represents a list of job postings.
type JobListResponse struct {
	Data  []JobResponse `json:"data"`
	Count int           `json:"count"`
}

// ToJobResponse converts a job model to its API representation.
func ToJobResponse(j *model.Job) JobResponse {
	tags := j.Tags
	if tags == nil {
		tags = []string{}
	}
	mediaURLs := j.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	applicants := j.Applicants
	if applicants == nil {
		applicants = []string{}
	}

	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Category:    j.Category,
		Tags:        tags,
		Location:    j.Location,
		IsRemote:    j.IsRemote,
		Deadline:    j.Deadline,
		Budget:      j.Budget,
		MediaURLs:   mediaURLs,
		EmployerID:  j.EmployerID,
		Applicants:  applicants,
		Status:      string(j.Status),
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ToJobListResponse converts a slice of job models to a list response.
func ToJobListResponse(jobs []*model.Job) JobListResponse {
	data := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		data = append(data, ToJobResponse(j))
	}
	return JobListResponse{Data: data, Count: len(data)}
}
