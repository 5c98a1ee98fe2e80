// Package model defines domain entities for the application.
package model

import "time"

// Role represents the account type of a user.
type Role string

const (
	RoleEmployer Role = "employer"
	RoleEmployee Role = "employee"
)

// IsValid checks if the role is a known value.
func (r Role) IsValid() bool {
	return r == RoleEmployer || r == RoleEmployee
}

// EmployerProfile holds the fields required for employer accounts.
type EmployerProfile struct {
	CompanyName                string `json:"company_name"`
	BusinessRegistrationNumber string `json:"business_registration_number"`
}

// EmployeeProfile holds the fields required for employee accounts.
type EmployeeProfile struct {
	ResumeURL string `json:"resume_url"`
}

// User represents a registered account.
// Exactly one of Employer/Employee is non-nil, matching Role.
type User struct {
	ID           string           `json:"id"`
	FullName     string           `json:"full_name"`
	Email        string           `json:"email"`
	PhoneNumber  string           `json:"phone_number,omitempty"`
	PasswordHash string           `json:"-"` // Never serialize
	Role         Role             `json:"role"`
	Employer     *EmployerProfile `json:"employer,omitempty"`
	Employee     *EmployeeProfile `json:"employee,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// IsEmployer returns true for employer accounts.
func (u *User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

// IsEmployee returns true for employee accounts.
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// ResumeURL returns the employee resume reference, if any.
func (u *User) ResumeURL() string {
	if u.Employee == nil {
		return ""
	}
	return u.Employee.ResumeURL
}
