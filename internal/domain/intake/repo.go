package intake

import (
	"context"

	"github.com/google/uuid"
)

// ConversationRepository persists intake conversations.
type ConversationRepository interface {
	Create(ctx context.Context, conv *Conversation) error
	// GetByID returns (nil, nil) when no conversation exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error)
}

// MessageRepository persists chat messages. Messages are append-only.
type MessageRepository interface {
	Append(ctx context.Context, msg *ChatMessage) error
	// ListByConversation returns the transcript ordered by created_at,
	// with insertion order breaking ties.
	ListByConversation(ctx context.Context, convID uuid.UUID) ([]*ChatMessage, error)
	CountBySender(ctx context.Context, convID uuid.UUID, sender string) (int, error)
}

// SummaryRepository persists completed-intake summaries.
type SummaryRepository interface {
	Create(ctx context.Context, sum *Summary) error
	// GetByID returns (nil, nil) when no summary exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Summary, error)
}
