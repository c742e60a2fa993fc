package intake

import (
	"time"

	"github.com/google/uuid"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Triage codes attached to a completed intake, most urgent first.
const (
	TriageImmediate = "immediate"
	TriageUrgent    = "urgent"
	TriageRoutine   = "routine"
)

// PriorityForTriage maps a triage code to a queue priority; lower is seen
// sooner. Unknown codes sort with routine cases.
func PriorityForTriage(code string) int {
	switch code {
	case TriageImmediate:
		return 1
	case TriageUrgent:
		return 2
	default:
		return 3
	}
}

// Conversation maps to the conversations table. A conversation is opened by
// the kiosk before the patient is identified, so it carries no patient link.
type Conversation struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChatMessage maps to the chat_messages table. Messages are append-only and
// ordered by created_at within a conversation.
type ChatMessage struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConversationID uuid.UUID `db:"conversation_id" json:"conversation_id"`
	Sender         string    `db:"sender" json:"sender"`
	Text           string    `db:"text" json:"text"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Summary maps to the summaries table. One summary is produced per completed
// intake conversation.
type Summary struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ConversationID uuid.UUID  `db:"conversation_id" json:"conversation_id"`
	PatientID      *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	TriageCode     string     `db:"triage_code" json:"triage_code"`
	Symptoms       string     `db:"symptoms" json:"symptoms"`
	Clinic         string     `db:"clinic" json:"clinic"`
	Note           *string    `db:"note" json:"note,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// SummaryDetails is a summary joined with its full ordered transcript.
type SummaryDetails struct {
	Summary      *Summary       `json:"summary"`
	Conversation []*ChatMessage `json:"conversation"`
}
