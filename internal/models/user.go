package models

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// ErrValidation is the base error for rejected request fields. Callers wrap
// it with a human-readable reason and the HTTP layer maps it to 400.
var ErrValidation = errors.New("validation failed")

// AllowedQualifications is the fixed whitelist of IT-related student
// qualifications accepted at registration.
var AllowedQualifications = map[string]bool{
	"BCA":                    true,
	"MCA":                    true,
	"BSc CS":                 true,
	"MSc CS":                 true,
	"B.Tech CSE":             true,
	"BE CSE":                 true,
	"B.Tech IT":              true,
	"BE IT":                  true,
	"Data Science":           true,
	"AI/ML":                  true,
	"Computer Engineering":   true,
	"Information Technology": true,
}

// User represents a registered student account
type User struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Qualification string         `json:"qualification"`
	PasswordHash  string         `json:"-"` // Never serialize
	Salt          string         `json:"-"` // Never serialize
	Progress      map[string]int `json:"progress"`
	CreatedAt     time.Time      `json:"created_at"`
}

// CompletedSteps returns the highest completed step index for a domain.
// Zero means no step has been passed yet.
func (u *User) CompletedSteps(domain string) int {
	if u == nil || u.Progress == nil {
		return 0
	}
	return u.Progress[domain]
}

// Profile is the subset of user data exposed on the profile endpoint
type Profile struct {
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Qualification string         `json:"qualification"`
	Progress      map[string]int `json:"progress"`
}

// Profile returns the public view of the user
func (u *User) Profile() *Profile {
	progress := u.Progress
	if progress == nil {
		progress = map[string]int{}
	}
	return &Profile{
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		Qualification: u.Qualification,
		Progress:      progress,
	}
}

// RegisterRequest represents a request to create a student account
type RegisterRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Qualification string `json:"qualification"`
	Password      string `json:"password"`
}

// Validate checks field bounds and the qualification whitelist
func (r *RegisterRequest) Validate() error {
	if l := len(strings.TrimSpace(r.FirstName)); l < 2 || l > 50 {
		return fmt.Errorf("%w: first_name must be 2-50 characters", ErrValidation)
	}
	if l := len(strings.TrimSpace(r.LastName)); l < 2 || l > 50 {
		return fmt.Errorf("%w: last_name must be 2-50 characters", ErrValidation)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	if l := len(strings.TrimSpace(r.Phone)); l < 10 || l > 15 {
		return fmt.Errorf("%w: phone must be 10-15 characters", ErrValidation)
	}
	if !AllowedQualifications[r.Qualification] {
		return fmt.Errorf("%w: only IT-related student qualifications are allowed", ErrValidation)
	}
	if l := len(r.Password); l < 6 || l > 128 {
		return fmt.Errorf("%w: password must be 6-128 characters", ErrValidation)
	}
	return nil
}

// RegisterResponse is returned after creating an account
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest represents a credential check
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for subsequent requests
type LoginResponse struct {
	Token     string `json:"token"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ChangePasswordRequest represents a password rotation for the current user
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate checks the replacement password bounds
func (r *ChangePasswordRequest) Validate() error {
	if l := len(r.NewPassword); l < 6 || l > 128 {
		return fmt.Errorf("%w: new_password must be 6-128 characters", ErrValidation)
	}
	return nil
}

// UpdateProfileRequest represents a partial profile update.
// Nil fields are left unchanged. Email is immutable.
type UpdateProfileRequest struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Qualification *string `json:"qualification,omitempty"`
}

// Validate checks bounds on each provided field
func (r *UpdateProfileRequest) Validate() error {
	if r.FirstName != nil {
		if l := len(strings.TrimSpace(*r.FirstName)); l < 2 || l > 50 {
			return fmt.Errorf("%w: first_name must be 2-50 characters", ErrValidation)
		}
	}
	if r.LastName != nil {
		if l := len(strings.TrimSpace(*r.LastName)); l < 2 || l > 50 {
			return fmt.Errorf("%w: last_name must be 2-50 characters", ErrValidation)
		}
	}
	if r.Phone != nil {
		if l := len(strings.TrimSpace(*r.Phone)); l < 10 || l > 15 {
			return fmt.Errorf("%w: phone must be 10-15 characters", ErrValidation)
		}
	}
	if r.Qualification != nil && !AllowedQualifications[*r.Qualification] {
		return fmt.Errorf("%w: only IT-related student qualifications are allowed", ErrValidation)
	}
	return nil
}

// IsEmpty reports whether the update carries no changes
func (r *UpdateProfileRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Phone == nil && r.Qualification == nil
}
