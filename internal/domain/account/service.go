package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mediq/mediq/internal/platform/auth"
	"github.com/mediq/mediq/internal/platform/db"
)

var (
	// ErrDuplicateEmail covers both the registration pre-check and a
	// unique-constraint race at insert time; callers map both to 409.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned for an unknown email AND for a wrong
	// password, so the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	hospitals HospitalRepository
	users     UserRepository
	tokens    *auth.TokenService
	runTx     db.TxRunner
}

func NewService(hospitals HospitalRepository, users UserRepository, tokens *auth.TokenService, runTx db.TxRunner) *Service {
	return &Service{hospitals: hospitals, users: users, tokens: tokens, runTx: runTx}
}

// Register creates a hospital and its first doctor account in a single
// transaction: either both rows exist afterwards, or neither does. Input is
// assumed validated by the caller.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		FullName: in.FullName,
		Email:    in.Email,
		Password: hashed,
		Role:     RoleDoctor,
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		hospital := &Hospital{Name: in.HospitalName}
		if err := s.hospitals.Create(ctx, hospital); err != nil {
			return fmt.Errorf("create hospital: %w", err)
		}
		user.HospitalID = hospital.ID
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		// A concurrent registration can slip past the pre-check; the
		// constraint violation gets the same answer as the pre-check.
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and issues a signed session token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*User, string, error) {
	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("look up user: %w", err)
	}
	if user == nil || !auth.VerifyPassword(in.Password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// GetUser fetches a user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// Profile returns the user together with the hospital they belong to, for
// the session introspection endpoint.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*User, *Hospital, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("look up user: %w", err)
	}
	hospital, err := s.hospitals.GetByID(ctx, user.HospitalID)
	if err != nil {
		return nil, nil, fmt.Errorf("load hospital: %w", err)
	}
	return user, hospital, nil
}
