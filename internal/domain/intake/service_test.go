package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockConvRepo struct {
	byID map[uuid.UUID]*Conversation
}

func (m *mockConvRepo) Create(_ context.Context, conv *Conversation) error {
	conv.ID = uuid.New()
	conv.CreatedAt = time.Now()
	m.byID[conv.ID] = conv
	return nil
}

func (m *mockConvRepo) GetByID(_ context.Context, id uuid.UUID) (*Conversation, error) {
	return m.byID[id], nil
}

type mockMsgRepo struct {
	msgs       []*ChatMessage
	failAppend bool
}

func (m *mockMsgRepo) Append(_ context.Context, msg *ChatMessage) error {
	if m.failAppend {
		return errors.New("append failed")
	}
	msg.ID = uuid.New()
	// Every append gets the same timestamp, as with now() inside a single
	// transaction; listing falls back to insertion order on ties.
	msg.CreatedAt = time.Unix(1700000000, 0)
	stored := *msg
	m.msgs = append(m.msgs, &stored)
	return nil
}

func (m *mockMsgRepo) ListByConversation(_ context.Context, convID uuid.UUID) ([]*ChatMessage, error) {
	var out []*ChatMessage
	for _, msg := range m.msgs {
		if msg.ConversationID == convID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMsgRepo) CountBySender(_ context.Context, convID uuid.UUID, sender string) (int, error) {
	n := 0
	for _, msg := range m.msgs {
		if msg.ConversationID == convID && msg.Sender == sender {
			n++
		}
	}
	return n, nil
}

type mockSumRepo struct {
	byID map[uuid.UUID]*Summary
}

func (m *mockSumRepo) Create(_ context.Context, sum *Summary) error {
	sum.ID = uuid.New()
	sum.CreatedAt = time.Now()
	m.byID[sum.ID] = sum
	return nil
}

func (m *mockSumRepo) GetByID(_ context.Context, id uuid.UUID) (*Summary, error) {
	return m.byID[id], nil
}

type enqueueCall struct {
	hospitalID uuid.UUID
	patientID  *uuid.UUID
	summaryID  uuid.UUID
	priority   int
}

type mockEnqueuer struct {
	calls []enqueueCall
	fail  bool
}

func (m *mockEnqueuer) Enqueue(_ context.Context, hospitalID uuid.UUID, patientID *uuid.UUID, summaryID uuid.UUID, priority int) error {
	if m.fail {
		return errors.New("enqueue failed")
	}
	m.calls = append(m.calls, enqueueCall{hospitalID, patientID, summaryID, priority})
	return nil
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(t *testing.T) (*Service, *mockMsgRepo, *mockEnqueuer) {
	t.Helper()
	msgs := &mockMsgRepo{}
	enq := &mockEnqueuer{}
	svc := NewService(
		&mockConvRepo{byID: map[uuid.UUID]*Conversation{}},
		msgs,
		&mockSumRepo{byID: map[uuid.UUID]*Summary{}},
		DefaultScript(),
		enq,
		passthroughTx,
	)
	return svc, msgs, enq
}

func TestService_StartConversation_SeedsGreeting(t *testing.T) {
	svc, msgs, _ := newTestService(t)

	conv, greeting, err := svc.StartConversation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.ID == uuid.Nil {
		t.Error("expected a conversation id")
	}
	if greeting.Sender != SenderBot || greeting.Text != Greeting {
		t.Errorf("expected bot greeting, got %+v", greeting)
	}
	if n, _ := msgs.CountBySender(context.Background(), conv.ID, SenderUser); n != 0 {
		t.Errorf("greeting must not count as a user message, got %d", n)
	}
}

func TestService_PostMessage_FollowsScript(t *testing.T) {
	svc, _, _ := newTestService(t)
	conv, _, err := svc.StartConversation(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	script := DefaultScript()
	for i := 0; i < len(script)+2; i++ {
		reply, err := svc.PostMessage(context.Background(), conv.ID, MessageInput{Text: "anything"})
		if err != nil {
			t.Fatalf("message %d: %v", i+1, err)
		}
		want := script.Reply(i + 1)
		if reply.Text != want {
			t.Errorf("message %d: got %q, want %q", i+1, reply.Text, want)
		}
		if reply.Sender != SenderBot {
			t.Errorf("message %d: reply sender = %q", i+1, reply.Sender)
		}
	}
}

func TestService_PostMessage_UnknownConversation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.PostMessage(context.Background(), uuid.New(), MessageInput{Text: "hello"})
	if !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestService_CompleteIntake_EnqueuesOneWaitingEntry(t *testing.T) {
	svc, _, enq := newTestService(t)
	conv, _, err := svc.StartConversation(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	hospitalID := uuid.New()
	patientID := uuid.New()
	sum, err := svc.CompleteIntake(context.Background(), conv.ID, CompleteInput{
		HospitalID: hospitalID,
		PatientID:  &patientID,
		TriageCode: TriageUrgent,
		Symptoms:   "chest pain",
		Clinic:     "General",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(enq.calls) != 1 {
		t.Fatalf("expected exactly one enqueue, got %d", len(enq.calls))
	}
	call := enq.calls[0]
	if call.hospitalID != hospitalID {
		t.Errorf("hospital id = %v, want %v", call.hospitalID, hospitalID)
	}
	if call.patientID == nil || *call.patientID != patientID {
		t.Errorf("patient id = %v, want %v", call.patientID, patientID)
	}
	if call.summaryID != sum.ID {
		t.Errorf("summary id = %v, want %v", call.summaryID, sum.ID)
	}
	if call.priority != 2 {
		t.Errorf("urgent triage must map to priority 2, got %d", call.priority)
	}
}

func TestService_CompleteIntake_EnqueueFailure(t *testing.T) {
	svc, _, enq := newTestService(t)
	enq.fail = true
	conv, _, err := svc.StartConversation(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	_, err = svc.CompleteIntake(context.Background(), conv.ID, CompleteInput{
		HospitalID: uuid.New(),
		TriageCode: TriageRoutine,
		Symptoms:   "headache",
		Clinic:     "General",
	})
	if err == nil {
		t.Fatal("expected error when enqueue fails")
	}
}

func TestService_CompleteIntake_UnknownConversation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CompleteIntake(context.Background(), uuid.New(), CompleteInput{
		HospitalID: uuid.New(),
		TriageCode: TriageRoutine,
		Symptoms:   "headache",
		Clinic:     "General",
	})
	if !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestService_GetSummaryDetails_MissingIsNil(t *testing.T) {
	svc, _, _ := newTestService(t)

	details, err := svc.GetSummaryDetails(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if details != nil {
		t.Errorf("expected nil details, got %+v", details)
	}
}

func TestService_GetSummaryDetails_IncludesOrderedTranscript(t *testing.T) {
	svc, _, _ := newTestService(t)
	conv, _, err := svc.StartConversation(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.PostMessage(context.Background(), conv.ID, MessageInput{Text: "I feel dizzy"}); err != nil {
		t.Fatalf("message: %v", err)
	}
	sum, err := svc.CompleteIntake(context.Background(), conv.ID, CompleteInput{
		HospitalID: uuid.New(),
		TriageCode: TriageImmediate,
		Symptoms:   "dizziness",
		Clinic:     "General",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	details, err := svc.GetSummaryDetails(context.Background(), sum.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details == nil || details.Summary.ID != sum.ID {
		t.Fatal("expected summary details")
	}
	// greeting + user message + bot reply
	if len(details.Conversation) != 3 {
		t.Fatalf("expected 3 transcript messages, got %d", len(details.Conversation))
	}
	if details.Conversation[0].Text != Greeting {
		t.Errorf("transcript must open with the greeting, got %q", details.Conversation[0].Text)
	}
	for i := 1; i < len(details.Conversation); i++ {
		if details.Conversation[i].CreatedAt.Before(details.Conversation[i-1].CreatedAt) {
			t.Errorf("transcript out of order at %d", i)
		}
	}
}

func TestService_GetSummaryDetails_RepliesFollowQuestionsOnTimestampTies(t *testing.T) {
	svc, _, _ := newTestService(t)
	conv, _, err := svc.StartConversation(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, text := range []string{"I feel dizzy", "since this morning"} {
		if _, err := svc.PostMessage(context.Background(), conv.ID, MessageInput{Text: text}); err != nil {
			t.Fatalf("message: %v", err)
		}
	}
	sum, err := svc.CompleteIntake(context.Background(), conv.ID, CompleteInput{
		HospitalID: uuid.New(),
		TriageCode: TriageRoutine,
		Symptoms:   "dizziness",
		Clinic:     "General",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	details, err := svc.GetSummaryDetails(context.Background(), sum.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A message and its reply share a created_at (transaction timestamp);
	// even so, each user message must precede the bot answer it provoked.
	wantSenders := []string{SenderBot, SenderUser, SenderBot, SenderUser, SenderBot}
	if len(details.Conversation) != len(wantSenders) {
		t.Fatalf("expected %d transcript messages, got %d", len(wantSenders), len(details.Conversation))
	}
	for i, want := range wantSenders {
		if details.Conversation[i].Sender != want {
			t.Errorf("position %d: sender %q, want %q", i, details.Conversation[i].Sender, want)
		}
	}
}

func TestMessageInput_Validate(t *testing.T) {
	if errs := (MessageInput{Text: "  "}).Validate(); errs["text"] == "" {
		t.Error("blank text must fail validation")
	}
	if errs := (MessageInput{Text: "hi"}).Validate(); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestCompleteInput_Validate(t *testing.T) {
	errs := CompleteInput{}.Validate()
	for _, field := range []string{"hospitalId", "triageCode", "symptoms", "clinic"} {
		if errs[field] == "" {
			t.Errorf("expected field error for %s, got %v", field, errs)
		}
	}
}
