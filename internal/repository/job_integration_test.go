//go:build integration

package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/testutil"
)

func TestCreateAndGetJob(t *testing.T) {
	repo, ctx := setupRepo(t)

	employer := testutil.NewTestEmployer(t)
	if err := repo.CreateUser(ctx, employer); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	job := testutil.NewTestJob(t, employer.ID)
	budget := 2500.0
	job.Budget = &budget
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	got, err := repo.GetJobByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJobByID: %v", err)
	}
	if got.Title != job.Title {
		t.Errorf("title = %q, want %q", got.Title, job.Title)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" {
		t.Errorf("tags = %v, want [go backend]", got.Tags)
	}
	if got.Budget == nil || *got.Budget != budget {
		t.Errorf("budget = %v, want %v", got.Budget, budget)
	}
	if got.Status != model.JobStatusActive {
		t.Errorf("status = %q, want %q", got.Status, model.JobStatusActive)
	}

	if _, err := repo.GetJobByID(ctx, "missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("missing job error = %v, want ErrJobNotFound", err)
	}
}

func TestListJobsFilters(t *testing.T) {
	repo, ctx := setupRepo(t)

	employer := testutil.NewTestEmployer(t)
	if err := repo.CreateUser(ctx, employer); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	remote := testutil.NewTestJob(t, employer.ID)
	remote.Title = "Remote Go Role"
	remote.Tags = []string{"go", "grpc"}
	remote.IsRemote = true
	if err := repo.CreateJob(ctx, remote); err != nil {
		t.Fatalf("CreateJob remote: %v", err)
	}

	onsite := testutil.NewTestJob(t, employer.ID)
	onsite.Title = "Onsite Design Role"
	onsite.Category = "design"
	onsite.Tags = []string{"figma"}
	onsite.Location = "Munich"
	onsite.IsRemote = false
	// Older post so ordering is observable.
	onsite.CreatedAt = onsite.CreatedAt.Add(-time.Hour)
	if err := repo.CreateJob(ctx, onsite); err != nil {
		t.Fatalf("CreateJob onsite: %v", err)
	}

	tests := []struct {
		name    string
		filter  JobFilter
		wantIDs []string
	}{
		{
			name:    "no filter returns all newest first",
			filter:  JobFilter{},
			wantIDs: []string{remote.ID, onsite.ID},
		},
		{
			name:    "by category",
			filter:  JobFilter{Category: "design"},
			wantIDs: []string{onsite.ID},
		},
		{
			name:    "by location",
			filter:  JobFilter{Location: "Munich"},
			wantIDs: []string{onsite.ID},
		},
		{
			name: "by remote flag",
			filter: JobFilter{IsRemote: func() *bool {
				v := true
				return &v
			}()},
			wantIDs: []string{remote.ID},
		},
		{
			name:    "tags match any",
			filter:  JobFilter{Tags: []string{"grpc", "kotlin"}},
			wantIDs: []string{remote.ID},
		},
		{
			name:    "by employer",
			filter:  JobFilter{EmployerID: employer.ID},
			wantIDs: []string{remote.ID, onsite.ID},
		},
		{
			name:    "no match",
			filter:  JobFilter{Category: "legal"},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := repo.ListJobs(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListJobs: %v", err)
			}
			if len(jobs) != len(tt.wantIDs) {
				t.Fatalf("got %d jobs, want %d", len(jobs), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if jobs[i].ID != want {
					t.Errorf("jobs[%d].ID = %q, want %q", i, jobs[i].ID, want)
				}
			}
		})
	}
}

func TestListJobsAppliedByIsExclusive(t *testing.T) {
	repo, ctx := setupRepo(t)

	employer := testutil.NewTestEmployer(t)
	if err := repo.CreateUser(ctx, employer); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	employee := testutil.NewTestEmployee(t)
	if err := repo.CreateUser(ctx, employee); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	applied := testutil.NewTestJob(t, employer.ID)
	applied.Applicants = []string{employee.ID}
	if err := repo.CreateJob(ctx, applied); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	other := testutil.NewTestJob(t, employer.ID)
	other.Category = "design"
	if err := repo.CreateJob(ctx, other); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	// Category would exclude the applied job, but AppliedBy wins.
	jobs, err := repo.ListJobs(ctx, JobFilter{AppliedBy: employee.ID, Category: "design"})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != applied.ID {
		t.Fatalf("AppliedBy filter returned %d jobs, want the applied one", len(jobs))
	}
}

func TestUpdateAndDeleteJob(t *testing.T) {
	repo, ctx := setupRepo(t)

	employer := testutil.NewTestEmployer(t)
	if err := repo.CreateUser(ctx, employer); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	job := testutil.NewTestJob(t, employer.ID)
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	job.Title = "Senior Backend Engineer"
	job.Status = model.JobStatusFilled
	job.UpdatedAt = time.Now().UTC()
	if err := repo.UpdateJob(ctx, job); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}

	got, err := repo.GetJobByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJobByID: %v", err)
	}
	if got.Title != "Senior Backend Engineer" || got.Status != model.JobStatusFilled {
		t.Errorf("update not persisted: title=%q status=%q", got.Title, got.Status)
	}

	missing := testutil.NewTestJob(t, employer.ID)
	if err := repo.UpdateJob(ctx, missing); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("update missing job error = %v, want ErrJobNotFound", err)
	}

	if err := repo.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if _, err := repo.GetJobByID(ctx, job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("deleted job still readable: %v", err)
	}
	if err := repo.DeleteJob(ctx, job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("double delete error = %v, want ErrJobNotFound", err)
	}
}

func TestAddApplicantIdempotent(t *testing.T) {
	repo, ctx := setupRepo(t)

	employer := testutil.NewTestEmployer(t)
	if err := repo.CreateUser(ctx, employer); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	job := testutil.NewTestJob(t, employer.ID)
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.AddApplicant(ctx, job.ID, "applicant-1"); err != nil {
			t.Fatalf("AddApplicant #%d: %v", i+1, err)
		}
	}

	got, err := repo.GetJobByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJobByID: %v", err)
	}
	if len(got.Applicants) != 1 || got.Applicants[0] != "applicant-1" {
		t.Errorf("applicants = %v, want exactly one entry", got.Applicants)
	}
}
