package service

import (
	"context"
	"errors"
	"testing"

	"github.com/workhive/workhive/internal/model"
)

func TestRegisterValidationErrors(t *testing.T) {
	t.Parallel()

	svc := &UserService{}

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "missing_everything",
			input:   RegisterInput{},
			wantErr: ErrMissingFields,
		},
		{
			name: "missing_email",
			input: RegisterInput{
				FullName: "Ada Lovelace",
				Password: "supersecret",
				Role:     model.RoleEmployee,
			},
			wantErr: ErrMissingFields,
		},
		{
			name: "short_password",
			input: RegisterInput{
				FullName: "Ada Lovelace",
				Email:    "ada@example.com",
				Password: "short",
				Role:     model.RoleEmployee,
			},
			wantErr: ErrPasswordTooShort,
		},
		{
			name: "unknown_role",
			input: RegisterInput{
				FullName: "Ada Lovelace",
				Email:    "ada@example.com",
				Password: "supersecret",
				Role:     model.Role("admin"),
			},
			wantErr: ErrInvalidRole,
		},
		{
			name: "employer_without_company",
			input: RegisterInput{
				FullName: "Grace Hopper",
				Email:    "grace@example.com",
				Password: "supersecret",
				Role:     model.RoleEmployer,
			},
			wantErr: ErrMissingEmployerFields,
		},
		{
			name: "employer_without_registration_number",
			input: RegisterInput{
				FullName:    "Grace Hopper",
				Email:       "grace@example.com",
				Password:    "supersecret",
				Role:        model.RoleEmployer,
				CompanyName: "Hopper Systems",
			},
			wantErr: ErrMissingEmployerFields,
		},
		{
			name: "employee_without_resume",
			input: RegisterInput{
				FullName: "Ada Lovelace",
				Email:    "ada@example.com",
				Password: "supersecret",
				Role:     model.RoleEmployee,
			},
			wantErr: ErrMissingResume,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
