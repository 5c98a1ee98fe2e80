//go:build integration

package repository

import (
	"errors"
	"strings"
	"testing"

	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/testutil"
)

func TestCreateAndGetUser(t *testing.T) {
	repo, ctx := setupRepo(t)

	employer := testutil.NewTestEmployer(t)
	if err := repo.CreateUser(ctx, employer); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := repo.GetUserByID(ctx, employer.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Email != employer.Email {
		t.Errorf("email = %q, want %q", got.Email, employer.Email)
	}
	if got.Role != model.RoleEmployer {
		t.Errorf("role = %q, want %q", got.Role, model.RoleEmployer)
	}
	if got.Employer == nil {
		t.Fatal("employer profile missing after round trip")
	}
	if got.Employer.CompanyName != employer.Employer.CompanyName {
		t.Errorf("company = %q, want %q", got.Employer.CompanyName, employer.Employer.CompanyName)
	}
	if got.Employee != nil {
		t.Error("employer should not carry an employee profile")
	}
}

func TestGetUserByEmail(t *testing.T) {
	repo, ctx := setupRepo(t)

	employee := testutil.NewTestEmployee(t)
	if err := repo.CreateUser(ctx, employee); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, employee.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != employee.ID {
		t.Errorf("id = %q, want %q", got.ID, employee.ID)
	}
	if got.Employee == nil || got.Employee.ResumeURL != employee.Employee.ResumeURL {
		t.Errorf("employee profile not preserved: %+v", got.Employee)
	}

	if _, err := repo.GetUserByEmail(ctx, "nobody@test.workhive.local"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing email error = %v, want ErrUserNotFound", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo, ctx := setupRepo(t)

	first := testutil.NewTestEmployee(t)
	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	second := testutil.NewTestEmployee(t)
	second.Email = first.Email
	if err := repo.CreateUser(ctx, second); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate email error = %v, want ErrEmailExists", err)
	}
}

func TestEmailUniquenessIsCaseInsensitiveAtCaller(t *testing.T) {
	// The store compares emails byte for byte. Normalization happens in
	// the service layer, so mixed-case duplicates are the caller's job.
	repo, ctx := setupRepo(t)

	user := testutil.NewTestEmployee(t)
	user.Email = strings.ToLower(user.Email)
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	exists, err := repo.EmailExists(ctx, user.Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Error("EmailExists = false for stored email")
	}

	exists, err = repo.EmailExists(ctx, "unknown@test.workhive.local")
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if exists {
		t.Error("EmailExists = true for unknown email")
	}
}
