package dto

import (
	"time"

	"github.com/workhive/workhive/internal/model"
)

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role"`

	// Employer fields
	CompanyName                string `json:"company_name,omitempty"`
	BusinessRegistrationNumber string `json:"business_registration_number,omitempty"`

	// Employee fields
	ResumeURL string `json:"resume_url,omitempty"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses.
// The password hash never appears here.
type UserResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`

	CompanyName                string `json:"company_name,omitempty"`
	BusinessRegistrationNumber string `json:"business_registration_number,omitempty"`
	ResumeURL                  string `json:"resume_url,omitempty"`
}

// AuthResponse represents the response to register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a user model to its API representation.
func ToUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}

	if u.Employer != nil {
		resp.CompanyName = u.Employer.CompanyName
		resp.BusinessRegistrationNumber = u.Employer.BusinessRegistrationNumber
	}
	if u.Employee != nil {
		resp.ResumeURL = u.Employee.ResumeURL
	}

	return resp
}
