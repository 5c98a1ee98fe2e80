// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/workhive/workhive/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 770077

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates one table's schema for tests.
// name is the migration base name, e.g. "000002_jobs".
func ResetSchema(ctx context.Context, pool *pgxpool.Pool, name string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downPath := filepath.Join(root, "migrations", name+".down.sql")
	upPath := filepath.Join(root, "migrations", name+".up.sql")

	downSQL, err := os.ReadFile(downPath)
	if err != nil {
		return fmt.Errorf("read down migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := os.ReadFile(upPath)
	if err != nil {
		return fmt.Errorf("read up migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// ResetAllSchemas recreates every table used by the test suite.
func ResetAllSchemas(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range []string{"000003_applications", "000002_jobs", "000001_users"} {
		if err := ResetSchema(ctx, pool, name); err != nil {
			return err
		}
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

var uniqueCounter atomic.Uint64

// UniqueID returns a process-unique identifier with a readable prefix.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%s-%d", prefix, ulid.Make().String(), uniqueCounter.Add(1))
}

// UniqueEmail returns a process-unique email address.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@test.workhive.local", prefix, uniqueCounter.Add(1))
}

// NewTestEmployer creates an employer user with sensible defaults.
func NewTestEmployer(t testing.TB) *model.User {
	t.Helper()
	return &model.User{
		ID:           UniqueID("employer"),
		FullName:     "Test Employer",
		Email:        UniqueEmail("employer"),
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		Role:         model.RoleEmployer,
		Employer: &model.EmployerProfile{
			CompanyName:                "Test Company",
			BusinessRegistrationNumber: "BRN-12345",
		},
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestEmployee creates an employee user with sensible defaults.
func NewTestEmployee(t testing.TB) *model.User {
	t.Helper()
	return &model.User{
		ID:           UniqueID("employee"),
		FullName:     "Test Employee",
		Email:        UniqueEmail("employee"),
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		Role:         model.RoleEmployee,
		Employee: &model.EmployeeProfile{
			ResumeURL: "https://files.test.workhive.local/resume.pdf",
		},
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestJob creates an active job with a deadline tomorrow.
func NewTestJob(t testing.TB, employerID string) *model.Job {
	t.Helper()
	now := time.Now().UTC()
	return &model.Job{
		ID:          UniqueID("job"),
		Title:       "Backend Engineer",
		Description: "Design and build APIs",
		Category:    "engineering",
		Tags:        []string{"go", "backend"},
		Location:    "Berlin",
		IsRemote:    true,
		Deadline:    now.Add(24 * time.Hour),
		MediaURLs:   []string{},
		EmployerID:  employerID,
		Applicants:  []string{},
		Status:      model.JobStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestApplication creates a pending application.
func NewTestApplication(t testing.TB, jobID, applicantID string) *model.Application {
	t.Helper()
	now := time.Now().UTC()
	return &model.Application{
		ID:          UniqueID("app"),
		JobID:       jobID,
		ApplicantID: applicantID,
		ResumeURL:   "https://files.test.workhive.local/resume.pdf",
		Status:      model.ApplicationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
