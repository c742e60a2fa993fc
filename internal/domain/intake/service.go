package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mediq/mediq/internal/platform/db"
)

var (
	// ErrConversationNotFound is returned when a message or completion targets
	// a conversation id that does not exist.
	ErrConversationNotFound = errors.New("conversation not found")
)

// Enqueuer places a completed intake on the hospital's triage queue. The queue
// service satisfies it through a small adapter, so this package never imports
// the queue package.
type Enqueuer interface {
	Enqueue(ctx context.Context, hospitalID uuid.UUID, patientID *uuid.UUID, summaryID uuid.UUID, priority int) error
}

// MessageInput is the body of a patient chat message.
type MessageInput struct {
	Text string `json:"text"`
}

func (in MessageInput) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Text) == "" {
		errs["text"] = "Message text is required"
	}
	return errs
}

// CompleteInput closes an intake conversation and carries everything the
// summary and queue entry need.
type CompleteInput struct {
	HospitalID uuid.UUID  `json:"hospitalId"`
	PatientID  *uuid.UUID `json:"patientId,omitempty"`
	TriageCode string     `json:"triageCode"`
	Symptoms   string     `json:"symptoms"`
	Clinic     string     `json:"clinic"`
	Note       *string    `json:"note,omitempty"`
}

func (in CompleteInput) Validate() map[string]string {
	errs := map[string]string{}
	if in.HospitalID == uuid.Nil {
		errs["hospitalId"] = "Hospital id is required"
	}
	if strings.TrimSpace(in.TriageCode) == "" {
		errs["triageCode"] = "Triage code is required"
	}
	if strings.TrimSpace(in.Symptoms) == "" {
		errs["symptoms"] = "Symptoms are required"
	}
	if strings.TrimSpace(in.Clinic) == "" {
		errs["clinic"] = "Clinic is required"
	}
	return errs
}

type Service struct {
	convs   ConversationRepository
	msgs    MessageRepository
	sums    SummaryRepository
	script  Script
	enqueue Enqueuer
	runTx   db.TxRunner
}

func NewService(convs ConversationRepository, msgs MessageRepository, sums SummaryRepository, script Script, enqueue Enqueuer, runTx db.TxRunner) *Service {
	return &Service{convs: convs, msgs: msgs, sums: sums, script: script, enqueue: enqueue, runTx: runTx}
}

// StartConversation opens a conversation and seeds it with the greeting. The
// greeting is a bot message, so it never advances the script.
func (s *Service) StartConversation(ctx context.Context) (*Conversation, *ChatMessage, error) {
	conv := &Conversation{}
	greeting := &ChatMessage{Sender: SenderBot, Text: Greeting}

	err := s.runTx(ctx, func(ctx context.Context) error {
		if err := s.convs.Create(ctx, conv); err != nil {
			return fmt.Errorf("create conversation: %w", err)
		}
		greeting.ConversationID = conv.ID
		if err := s.msgs.Append(ctx, greeting); err != nil {
			return fmt.Errorf("append greeting: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return conv, greeting, nil
}

// PostMessage appends the patient's message and returns the scripted bot
// reply. The reply depends only on how many user messages the conversation
// now holds, never on what was typed.
func (s *Service) PostMessage(ctx context.Context, convID uuid.UUID, in MessageInput) (*ChatMessage, error) {
	conv, err := s.convs.GetByID(ctx, convID)
	if err != nil {
		return nil, fmt.Errorf("look up conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	reply := &ChatMessage{ConversationID: convID, Sender: SenderBot}
	err = s.runTx(ctx, func(ctx context.Context) error {
		userMsg := &ChatMessage{ConversationID: convID, Sender: SenderUser, Text: in.Text}
		if err := s.msgs.Append(ctx, userMsg); err != nil {
			return fmt.Errorf("append user message: %w", err)
		}
		n, err := s.msgs.CountBySender(ctx, convID, SenderUser)
		if err != nil {
			return fmt.Errorf("count user messages: %w", err)
		}
		reply.Text = s.script.Reply(n)
		if err := s.msgs.Append(ctx, reply); err != nil {
			return fmt.Errorf("append bot reply: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// CompleteIntake records the case summary and places a waiting entry on the
// hospital's queue, atomically. Priority is derived from the triage code.
func (s *Service) CompleteIntake(ctx context.Context, convID uuid.UUID, in CompleteInput) (*Summary, error) {
	conv, err := s.convs.GetByID(ctx, convID)
	if err != nil {
		return nil, fmt.Errorf("look up conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	sum := &Summary{
		ConversationID: convID,
		PatientID:      in.PatientID,
		TriageCode:     in.TriageCode,
		Symptoms:       in.Symptoms,
		Clinic:         in.Clinic,
		Note:           in.Note,
	}
	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.sums.Create(ctx, sum); err != nil {
			return fmt.Errorf("create summary: %w", err)
		}
		priority := PriorityForTriage(in.TriageCode)
		if err := s.enqueue.Enqueue(ctx, in.HospitalID, in.PatientID, sum.ID, priority); err != nil {
			return fmt.Errorf("enqueue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// GetSummaryDetails returns a summary with its full ordered transcript, or
// (nil, nil) when no summary exists. Absence is not an error.
func (s *Service) GetSummaryDetails(ctx context.Context, summaryID uuid.UUID) (*SummaryDetails, error) {
	sum, err := s.sums.GetByID(ctx, summaryID)
	if err != nil {
		return nil, fmt.Errorf("look up summary: %w", err)
	}
	if sum == nil {
		return nil, nil
	}
	msgs, err := s.msgs.ListByConversation(ctx, sum.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	return &SummaryDetails{Summary: sum, Conversation: msgs}, nil
}
