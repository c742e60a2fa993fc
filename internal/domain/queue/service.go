package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidStatus is returned for a status value outside the known set.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrEntryNotFound is returned when a status update targets an unknown
	// queue entry.
	ErrEntryNotFound = errors.New("queue entry not found")
)

type Service struct {
	entries Repository
}

func NewService(entries Repository) *Service {
	return &Service{entries: entries}
}

// Enqueue places a new waiting entry on the hospital's queue. Its signature
// is shaped so the intake service can depend on it without importing this
// package.
func (s *Service) Enqueue(ctx context.Context, hospitalID uuid.UUID, patientID *uuid.UUID, summaryID uuid.UUID, priority int) error {
	entry := &Entry{
		HospitalID: hospitalID,
		PatientID:  patientID,
		SummaryID:  &summaryID,
		Priority:   priority,
		Status:     StatusWaiting,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return fmt.Errorf("create queue entry: %w", err)
	}
	return nil
}

// GetQueue returns a page of the hospital's dashboard rows, already ordered
// by urgency then arrival, plus the total entry count. Entries without a
// linked patient get a placeholder name.
func (s *Service) GetQueue(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]Item, int, error) {
	rows, total, err := s.entries.ListByHospital(ctx, hospitalID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list queue: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		item := Item{
			ID:          row.ID,
			PatientName: unknownPatient,
			Date:        row.CreatedAt.Format(dateFormat),
			Status:      row.Status,
			SummaryID:   row.SummaryID,
		}
		if row.PatientName != nil && *row.PatientName != "" {
			item.PatientName = *row.PatientName
		}
		if row.TriageCode != nil {
			item.TriageCode = *row.TriageCode
		}
		items = append(items, item)
	}
	return items, total, nil
}

// UpdateStatus moves an entry to the given status. Last write wins; there is
// no optimistic concurrency and completed entries stay on the queue.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	updated, err := s.entries.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if !updated {
		return ErrEntryNotFound
	}
	return nil
}
