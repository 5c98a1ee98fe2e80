package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workhive/workhive/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// CreateUser inserts a new user into the database.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, full_name, email, phone_number, password_hash, role, company_name, business_registration_number, resume_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var companyName, registrationNumber, resumeURL sql.NullString
	if user.Employer != nil {
		companyName = sql.NullString{String: user.Employer.CompanyName, Valid: true}
		registrationNumber = sql.NullString{String: user.Employer.BusinessRegistrationNumber, Valid: true}
	}
	if user.Employee != nil {
		resumeURL = sql.NullString{String: user.Employee.ResumeURL, Valid: true}
	}

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		string(user.Role),
		companyName,
		registrationNumber,
		resumeURL,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

const userColumns = `id, full_name, email, phone_number, password_hash, role, company_name, business_registration_number, resume_url, created_at`

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// EmailExists checks if a user with the given email is already registered.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// scanUser scans a single row into a User model, rebuilding the
// role-specific profile from the nullable columns.
func scanUser(row pgx.Row) (*model.User, error) {
	var (
		user               model.User
		role               string
		companyName        sql.NullString
		registrationNumber sql.NullString
		resumeURL          sql.NullString
	)

	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&role,
		&companyName,
		&registrationNumber,
		&resumeURL,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = model.Role(role)
	switch user.Role {
	case model.RoleEmployer:
		user.Employer = &model.EmployerProfile{
			CompanyName:                companyName.String,
			BusinessRegistrationNumber: registrationNumber.String,
		}
	case model.RoleEmployee:
		user.Employee = &model.EmployeeProfile{
			ResumeURL: resumeURL.String,
		}
	}

	return &user, nil
}
