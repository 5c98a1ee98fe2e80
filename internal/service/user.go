// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/metrics"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/repository"
)

// User service errors.
var (
	ErrEmailExists           = errors.New("email already registered")
	ErrMissingFields         = errors.New("full name, email and password are required")
	ErrInvalidRole           = errors.New("role must be employer or employee")
	ErrMissingEmployerFields = errors.New("company name and business registration number are required for employers")
	ErrMissingResume         = errors.New("resume URL is required for employees")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserNotFound          = errors.New("user not found")
)

const minPasswordLength = 8

// UserService handles registration, login and profile reads.
type UserService struct {
	repo    *repository.Repository
	signer  *auth.Signer
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, signer *auth.Signer, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		signer:  signer,
		metrics: recorder,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
	Role        model.Role

	// Employer fields
	CompanyName                string
	BusinessRegistrationNumber string

	// Employee fields
	ResumeURL string
}

// Register creates a new account with a hashed credential and issues a
// signed token for the fresh session.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (string, *model.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)

	if input.FullName == "" || input.Email == "" || input.Password == "" {
		return "", nil, ErrMissingFields
	}
	if len(input.Password) < minPasswordLength {
		return "", nil, ErrPasswordTooShort
	}
	if !input.Role.IsValid() {
		return "", nil, ErrInvalidRole
	}

	user := &model.User{
		ID:          ulid.Make().String(),
		FullName:    input.FullName,
		Email:       input.Email,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Role:        input.Role,
		CreatedAt:   time.Now().UTC(),
	}

	// Role-specific required fields live on the matching profile.
	switch input.Role {
	case model.RoleEmployer:
		if input.CompanyName == "" || input.BusinessRegistrationNumber == "" {
			return "", nil, ErrMissingEmployerFields
		}
		user.Employer = &model.EmployerProfile{
			CompanyName:                input.CompanyName,
			BusinessRegistrationNumber: input.BusinessRegistrationNumber,
		}
	case model.RoleEmployee:
		if input.ResumeURL == "" {
			return "", nil, ErrMissingResume
		}
		user.Employee = &model.EmployeeProfile{ResumeURL: input.ResumeURL}
	}

	// Checked before hashing. The unique index on email still catches
	// a concurrent registration.
	exists, err := s.repo.EmailExists(ctx, input.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return "", nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return "", nil, ErrEmailExists
		}
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.signer.Sign(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.metrics.IncUserRegistered(string(user.Role))

	return token, user, nil
}

// Login verifies a credential and issues a signed, time-bounded token.
// A missing account and a wrong password are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		s.metrics.IncLoginFailed()
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.metrics.IncLoginSucceeded()

	return token, user, nil
}

// GetUser retrieves a user by ID. The password hash never reaches the
// response layer (excluded at the DTO boundary).
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
