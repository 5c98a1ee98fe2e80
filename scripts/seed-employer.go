// Command seed-employer bootstraps an employer account, so a fresh
// deployment has a login that can post jobs.
//
// Usage:
//
//	go run ./scripts/seed-employer.go -email ops@workhive.local -password change-me
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/repository"
)

type output struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "ops@workhive.local", "Employer email")
		password    = flag.String("password", "", "Employer password (required)")
		fullName    = flag.String("name", "WorkHive Ops", "Employer full name")
		company     = flag.String("company", "WorkHive", "Company name")
		brn         = flag.String("brn", "BRN-000001", "Business registration number")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if existing, err := repo.GetUserByEmail(ctx, *email); err == nil {
		printOutput(*format, output{
			UserID:  existing.ID,
			Email:   existing.Email,
			Role:    string(existing.Role),
			Company: *company,
		}, true)
		return
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		fmt.Fprintln(os.Stderr, "look up user:", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		FullName:     *fullName,
		Email:        *email,
		PasswordHash: hash,
		Role:         model.RoleEmployer,
		Employer: &model.EmployerProfile{
			CompanyName:                *company,
			BusinessRegistrationNumber: *brn,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	printOutput(*format, output{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    string(user.Role),
		Company: *company,
	}, false)
}

func printOutput(format string, out output, existed bool) {
	if format == "json" {
		_ = json.NewEncoder(os.Stdout).Encode(out)
		return
	}

	if existed {
		fmt.Println("employer already exists")
	} else {
		fmt.Println("employer created")
	}
	fmt.Println("  user_id:", out.UserID)
	fmt.Println("  email:  ", out.Email)
	fmt.Println("  company:", out.Company)
}
