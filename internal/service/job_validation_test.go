package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/model"
)

func TestCreateJobRequiresEmployer(t *testing.T) {
	t.Parallel()

	svc := &JobService{}
	caller := &auth.Identity{UserID: "u1", Role: model.RoleEmployee}

	_, err := svc.CreateJob(context.Background(), caller, CreateJobInput{
		Title:       "Backend Engineer",
		Description: "Build APIs",
		Category:    "engineering",
		Deadline:    time.Now().Add(24 * time.Hour),
	})
	if !errors.Is(err, ErrNotEmployer) {
		t.Fatalf("expected ErrNotEmployer, got %v", err)
	}
}

func TestCreateJobValidationErrors(t *testing.T) {
	t.Parallel()

	svc := &JobService{}
	caller := &auth.Identity{UserID: "emp1", Role: model.RoleEmployer}

	tests := []struct {
		name  string
		input CreateJobInput
	}{
		{
			name: "missing_title",
			input: CreateJobInput{
				Description: "Build APIs",
				Category:    "engineering",
				Deadline:    time.Now().Add(24 * time.Hour),
			},
		},
		{
			name: "missing_description",
			input: CreateJobInput{
				Title:    "Backend Engineer",
				Category: "engineering",
				Deadline: time.Now().Add(24 * time.Hour),
			},
		},
		{
			name: "missing_category",
			input: CreateJobInput{
				Title:       "Backend Engineer",
				Description: "Build APIs",
				Deadline:    time.Now().Add(24 * time.Hour),
			},
		},
		{
			name: "missing_deadline",
			input: CreateJobInput{
				Title:       "Backend Engineer",
				Description: "Build APIs",
				Category:    "engineering",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.CreateJob(context.Background(), caller, test.input)
			if !errors.Is(err, ErrMissingJobFields) {
				t.Fatalf("expected ErrMissingJobFields, got %v", err)
			}
		})
	}
}

func TestApplyRequiresEmployee(t *testing.T) {
	t.Parallel()

	svc := &ApplicationService{}
	caller := &auth.Identity{UserID: "emp1", Role: model.RoleEmployer}

	_, err := svc.Apply(context.Background(), caller, "job1", "")
	if !errors.Is(err, ErrNotEmployee) {
		t.Fatalf("expected ErrNotEmployee, got %v", err)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := &ApplicationService{}
	caller := &auth.Identity{UserID: "emp1", Role: model.RoleEmployer}

	_, err := svc.SetStatus(context.Background(), caller, "app1", model.ApplicationStatus("open"))
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
