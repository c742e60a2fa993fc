package queue

import (
	"time"

	"github.com/google/uuid"
)

// Queue entry statuses. Completed entries are archived in place, never
// deleted.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the known queue statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusWaiting, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// dateFormat is the display format queue rows carry to the dashboard.
const dateFormat = "2006-01-02 15:04"

// unknownPatient is shown when an entry has no linked patient account.
const unknownPatient = "Unknown Patient"

// Entry maps to the queue_entries table. Lower priority is seen sooner.
type Entry struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	HospitalID uuid.UUID  `db:"hospital_id" json:"hospital_id"`
	PatientID  *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	SummaryID  *uuid.UUID `db:"summary_id" json:"summary_id,omitempty"`
	Priority   int        `db:"priority" json:"priority"`
	Status     string     `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// Row is an entry joined with the patient and summary it references. Join
// columns are nullable: anonymous intakes have no patient row.
type Row struct {
	Entry
	PatientName *string
	TriageCode  *string
}

// Item is one dashboard row, formatted for display.
type Item struct {
	ID          uuid.UUID  `json:"id"`
	PatientName string     `json:"patientName"`
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	SummaryID   *uuid.UUID `json:"summaryId,omitempty"`
	TriageCode  string     `json:"triageCode,omitempty"`
}

// StatusResult is the structured outcome of a status update.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
