package account

import (
	"context"

	"github.com/google/uuid"
)

type HospitalRepository interface {
	Create(ctx context.Context, h *Hospital) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error)
}

type UserRepository interface {
	// Create inserts the user. A duplicate email surfaces as
	// ErrDuplicateEmail even when it races past a prior existence check.
	Create(ctx context.Context, u *User) error
	// GetByEmail returns (nil, nil) when no user has that email.
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
