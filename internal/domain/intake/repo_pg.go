package intake

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediq/mediq/internal/platform/db"
)

type conversationRepoPG struct{ pool *pgxpool.Pool }

func NewConversationRepoPG(pool *pgxpool.Pool) ConversationRepository {
	return &conversationRepoPG{pool: pool}
}

func (r *conversationRepoPG) conn(ctx context.Context) db.Queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *conversationRepoPG) Create(ctx context.Context, conv *Conversation) error {
	conv.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO conversations (id) VALUES ($1)`, conv.ID)
	return err
}

func (r *conversationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	var conv Conversation
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, created_at FROM conversations WHERE id = $1`, id).
		Scan(&conv.ID, &conv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

type messageRepoPG struct{ pool *pgxpool.Pool }

func NewMessageRepoPG(pool *pgxpool.Pool) MessageRepository {
	return &messageRepoPG{pool: pool}
}

func (r *messageRepoPG) conn(ctx context.Context) db.Queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *messageRepoPG) Append(ctx context.Context, msg *ChatMessage) error {
	msg.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx,
		`INSERT INTO chat_messages (id, conversation_id, sender, text)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		msg.ID, msg.ConversationID, msg.Sender, msg.Text).
		Scan(&msg.CreatedAt)
}

func (r *messageRepoPG) ListByConversation(ctx context.Context, convID uuid.UUID) ([]*ChatMessage, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, conversation_id, sender, text, created_at
		 FROM chat_messages
		 WHERE conversation_id = $1
		 ORDER BY created_at ASC, seq ASC`, convID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

func (r *messageRepoPG) CountBySender(ctx context.Context, convID uuid.UUID, sender string) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE conversation_id = $1 AND sender = $2`,
		convID, sender).Scan(&n)
	return n, err
}

type summaryRepoPG struct{ pool *pgxpool.Pool }

func NewSummaryRepoPG(pool *pgxpool.Pool) SummaryRepository {
	return &summaryRepoPG{pool: pool}
}

func (r *summaryRepoPG) conn(ctx context.Context) db.Queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *summaryRepoPG) Create(ctx context.Context, sum *Summary) error {
	sum.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx,
		`INSERT INTO summaries (id, conversation_id, patient_id, triage_code, symptoms, clinic, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		sum.ID, sum.ConversationID, sum.PatientID, sum.TriageCode, sum.Symptoms, sum.Clinic, sum.Note).
		Scan(&sum.CreatedAt)
}

func (r *summaryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Summary, error) {
	var s Summary
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, conversation_id, patient_id, triage_code, symptoms, clinic, note, created_at
		 FROM summaries WHERE id = $1`, id).
		Scan(&s.ID, &s.ConversationID, &s.PatientID, &s.TriageCode, &s.Symptoms, &s.Clinic, &s.Note, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
