package queue

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists queue entries.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	// ListByHospital returns a page of joined rows ordered by (priority asc,
	// created_at asc), independent of insertion order, plus the total count.
	ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Row, int, error)
	// UpdateStatus reports whether an entry with that id existed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (bool, error)
}
