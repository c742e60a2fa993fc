package account

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// Hospital maps to the hospitals table. One hospital is created per
// registration and owns the registering doctor and its patient queue.
type Hospital struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// User maps to the users table. The password hash never leaves the server:
// it is excluded from every JSON response.
type User struct {
	ID         uuid.UUID `db:"id" json:"id"`
	FullName   string    `db:"full_name" json:"full_name"`
	Email      string    `db:"email" json:"email"`
	Password   string    `db:"password" json:"-"`
	Role       string    `db:"role" json:"role"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospital_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RegisterInput is the registration request body.
type RegisterInput struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	HospitalName string `json:"hospitalName"`
}

// Validate returns per-field error messages, empty when the input is valid.
func (in *RegisterInput) Validate() map[string]string {
	errs := make(map[string]string)
	if len(strings.TrimSpace(in.FullName)) < 2 {
		errs["fullName"] = "Full name must be at least 2 characters"
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		errs["email"] = "Invalid email address"
	}
	if len(in.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if len(strings.TrimSpace(in.HospitalName)) < 2 {
		errs["hospitalName"] = "Hospital name must be at least 2 characters"
	}
	return errs
}

// LoginInput is the login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns per-field error messages, empty when the input is valid.
// The password is deliberately not checked here: an empty or wrong password
// is a credential failure (401), never a validation failure.
func (in *LoginInput) Validate() map[string]string {
	errs := make(map[string]string)
	if _, err := mail.ParseAddress(in.Email); err != nil {
		errs["email"] = "Invalid email address"
	}
	return errs
}
