package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/bankora/bankora-api/internal/config"
	"github.com/bankora/bankora-api/internal/domain"
)

// memConvStore is an in-memory conversationStore with the same ordering and
// dual-write semantics as the Postgres implementation.
type memConvStore struct {
	convs     map[string]*domain.Conversation
	msgs      map[string][]domain.Message
	summaries map[string][]domain.ConversationSummary
	seq       int
}

func newMemConvStore() *memConvStore {
	return &memConvStore{
		convs:     map[string]*domain.Conversation{},
		msgs:      map[string][]domain.Message{},
		summaries: map[string][]domain.ConversationSummary{},
	}
}

func (s *memConvStore) tick() time.Time {
	s.seq++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
}

func (s *memConvStore) Create(_ context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	now := s.tick()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	s.convs[conv.ID] = conv
	s.summaries[conv.UserID] = append(s.summaries[conv.UserID], domain.ConversationSummary{
		ID: conv.ID, Title: conv.Title, ModelType: conv.ModelType, UpdatedAt: now,
	})
	return conv, nil
}

func (s *memConvStore) Rename(_ context.Context, userID, conversationID, title string) error {
	conv, ok := s.convs[conversationID]
	if !ok || conv.UserID != userID {
		return domain.ErrConversationNotFound
	}
	now := s.tick()
	conv.Title = title
	conv.UpdatedAt = now
	for i, sum := range s.summaries[userID] {
		if sum.ID == conversationID {
			s.summaries[userID][i].Title = title
			s.summaries[userID][i].UpdatedAt = now
		}
	}
	return nil
}

func (s *memConvStore) Delete(_ context.Context, userID, conversationID string) error {
	conv, ok := s.convs[conversationID]
	if !ok || conv.UserID != userID {
		return domain.ErrConversationNotFound
	}
	delete(s.convs, conversationID)
	delete(s.msgs, conversationID)
	kept := s.summaries[userID][:0]
	for _, sum := range s.summaries[userID] {
		if sum.ID != conversationID {
			kept = append(kept, sum)
		}
	}
	s.summaries[userID] = kept
	return nil
}

func (s *memConvStore) ListSummaries(_ context.Context, userID string) ([]domain.ConversationSummary, error) {
	out := append([]domain.ConversationSummary(nil), s.summaries[userID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *memConvStore) Get(_ context.Context, userID, conversationID string) (*domain.Conversation, error) {
	conv, ok := s.convs[conversationID]
	if !ok || conv.UserID != userID {
		return nil, domain.ErrConversationNotFound
	}
	return conv, nil
}

func (s *memConvStore) Messages(ctx context.Context, userID, conversationID string) ([]domain.Message, error) {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return append([]domain.Message(nil), s.msgs[conversationID]...), nil
}

func (s *memConvStore) bump(userID, conversationID string) {
	now := s.tick()
	s.convs[conversationID].UpdatedAt = now
	for i, sum := range s.summaries[userID] {
		if sum.ID == conversationID {
			s.summaries[userID][i].UpdatedAt = now
		}
	}
}

func (s *memConvStore) AppendMessage(ctx context.Context, userID, conversationID string, msg domain.Message) (*domain.Message, error) {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	msg.CreatedAt = s.tick()
	s.msgs[conversationID] = append(s.msgs[conversationID], msg)
	s.bump(userID, conversationID)
	return &msg, nil
}

func (s *memConvStore) UpdateMessageContent(ctx context.Context, userID, conversationID, messageID, content string) (*domain.Message, error) {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	for i, m := range s.msgs[conversationID] {
		if m.ID == messageID {
			s.msgs[conversationID][i].Content = content
			s.msgs[conversationID][i].CreatedAt = s.tick()
			s.bump(userID, conversationID)
			msg := s.msgs[conversationID][i]
			return &msg, nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (s *memConvStore) ReplaceAt(ctx context.Context, userID, conversationID string, position int, role domain.Role, content string) (*domain.Message, error) {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	msgs := s.msgs[conversationID]
	if position < len(msgs) {
		msgs[position].Role = role
		msgs[position].Content = content
		msgs[position].CreatedAt = s.tick()
		s.bump(userID, conversationID)
		msg := msgs[position]
		return &msg, nil
	}
	msg := domain.Message{ID: fmt.Sprintf("generated-%d", s.seq), Role: role, Content: content, CreatedAt: s.tick()}
	s.msgs[conversationID] = append(msgs, msg)
	s.bump(userID, conversationID)
	return &msg, nil
}

type fakeProvider struct {
	name  string
	fn    func(ctx context.Context, query string) (string, error)
	calls []string
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Answer(ctx context.Context, query string) (string, error) {
	p.calls = append(p.calls, query)
	return p.fn(ctx, query)
}

func echoProvider(name string) *fakeProvider {
	return &fakeProvider{name: name, fn: func(_ context.Context, q string) (string, error) {
		return "reply to: " + q, nil
	}}
}

func downProvider(name string) *fakeProvider {
	return &fakeProvider{name: name, fn: func(_ context.Context, _ string) (string, error) {
		return "", errors.New(name + " unavailable")
	}}
}

type noopNotifier struct{}

func (noopNotifier) Registration(string, string)   {}
func (noopNotifier) ProviderFailure(string, error) {}

func newTestChat(t *testing.T, modelType domain.ModelType, finGenie, bankora *fakeProvider) (*ChatService, *memConvStore, *domain.Conversation) {
	t.Helper()
	store := newMemConvStore()
	convs := NewConversationService(store)
	conv, err := convs.Create(context.Background(), "user-1", modelType, "Budget help")
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	chat := NewChatService(store, NewProviderRouter(finGenie, bankora), noopNotifier{})
	return chat, store, conv
}

func TestSendAppendsUserThenAssistant(t *testing.T) {
	chat, store, conv := newTestChat(t, domain.ModelFinGenie, echoProvider("fingenie"), echoProvider("bankora"))

	result, err := chat.Send(context.Background(), "user-1", conv.ID, "How do I budget?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	msgs := store.msgs[conv.ID]
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[0].Content != "How do I budget?" {
		t.Errorf("unexpected user message: %+v", msgs[0])
	}
	if msgs[1].Role != domain.RoleAssistant || msgs[1].Content != "reply to: How do I budget?" {
		t.Errorf("unexpected assistant message: %+v", msgs[1])
	}
	if result.UserMessage.ID != msgs[0].ID || result.AssistantMessage.ID != msgs[1].ID {
		t.Errorf("result ids do not match stored messages")
	}
}

func TestSendKeepsUserMessageWhenProvidersFail(t *testing.T) {
	chat, store, conv := newTestChat(t, domain.ModelBankora, downProvider("fingenie"), downProvider("bankora"))

	_, err := chat.Send(context.Background(), "user-1", conv.ID, "hello")
	if err == nil {
		t.Fatal("expected error when both providers fail")
	}

	msgs := store.msgs[conv.ID]
	if len(msgs) != 1 || msgs[0].Role != domain.RoleUser {
		t.Fatalf("expected only the user message persisted, got %d messages", len(msgs))
	}
}

func TestSendBankoraFallbackWrapsQuery(t *testing.T) {
	finGenie := echoProvider("fingenie")
	bankora := downProvider("bankora")
	chat, store, conv := newTestChat(t, domain.ModelBankora, finGenie, bankora)

	_, err := chat.Send(context.Background(), "user-1", conv.ID, "loan rates in Accra")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(bankora.calls) != 1 {
		t.Fatalf("expected exactly one bankora attempt, got %d", len(bankora.calls))
	}
	if len(finGenie.calls) != 1 {
		t.Fatalf("expected exactly one fallback attempt, got %d", len(finGenie.calls))
	}
	if !strings.HasPrefix(finGenie.calls[0], config.BankoraFallbackPrefix) {
		t.Errorf("fallback query missing role-play prefix: %q", finGenie.calls[0])
	}
	if !strings.Contains(finGenie.calls[0], "loan rates in Accra") {
		t.Errorf("fallback query missing original text: %q", finGenie.calls[0])
	}

	msgs := store.msgs[conv.ID]
	if msgs[1].Content != "reply to: "+config.BankoraFallbackPrefix+"loan rates in Accra" {
		t.Errorf("stored assistant message does not come from the fallback: %q", msgs[1].Content)
	}
}

func TestSendRejectsEmptyContent(t *testing.T) {
	chat, _, conv := newTestChat(t, domain.ModelFinGenie, echoProvider("fingenie"), echoProvider("bankora"))

	if _, err := chat.Send(context.Background(), "user-1", conv.ID, "   "); !errors.Is(err, domain.ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestEditTriggersSingleRegenerate(t *testing.T) {
	finGenie := echoProvider("fingenie")
	chat, store, conv := newTestChat(t, domain.ModelFinGenie, finGenie, echoProvider("bankora"))

	if _, err := chat.Send(context.Background(), "user-1", conv.ID, "original question"); err != nil {
		t.Fatalf("send: %v", err)
	}
	userMsg := store.msgs[conv.ID][0]
	assistantID := store.msgs[conv.ID][1].ID

	result, err := chat.Edit(context.Background(), "user-1", conv.ID, domain.Message{
		ID: userMsg.ID, Role: domain.RoleUser, Content: "edited question",
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	// send + exactly one regenerate
	if len(finGenie.calls) != 2 {
		t.Fatalf("expected 2 provider calls, got %d", len(finGenie.calls))
	}
	if finGenie.calls[1] != "edited question" {
		t.Errorf("regenerate used wrong query: %q", finGenie.calls[1])
	}
	if result.Regenerated == nil {
		t.Fatal("expected a regenerated message")
	}

	msgs := store.msgs[conv.ID]
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages after edit, got %d", len(msgs))
	}
	if msgs[0].Content != "edited question" || msgs[0].ID != userMsg.ID {
		t.Errorf("edit did not replace content in place: %+v", msgs[0])
	}
	if msgs[1].ID != assistantID {
		t.Errorf("regenerate did not keep the assistant message id")
	}
	if msgs[1].Content != "reply to: edited question" {
		t.Errorf("unexpected regenerated content: %q", msgs[1].Content)
	}
}

func TestEditLastMessageDoesNotRegenerate(t *testing.T) {
	finGenie := echoProvider("fingenie")
	chat, store, conv := newTestChat(t, domain.ModelFinGenie, finGenie, echoProvider("bankora"))

	userMsg, err := store.AppendMessage(context.Background(), "user-1", conv.ID, domain.Message{
		ID: "msg-1", Role: domain.RoleUser, Content: "unanswered",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	result, err := chat.Edit(context.Background(), "user-1", conv.ID, domain.Message{
		ID: userMsg.ID, Role: domain.RoleUser, Content: "still unanswered",
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if result.Regenerated != nil {
		t.Error("expected no regenerate for the last message")
	}
	if len(finGenie.calls) != 0 {
		t.Errorf("expected no provider calls, got %d", len(finGenie.calls))
	}
}

func TestEditUnknownIDAppends(t *testing.T) {
	chat, store, conv := newTestChat(t, domain.ModelFinGenie, echoProvider("fingenie"), echoProvider("bankora"))

	result, err := chat.Edit(context.Background(), "user-1", conv.ID, domain.Message{
		ID: "missing", Role: domain.RoleUser, Content: "late arrival",
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if result.Regenerated != nil {
		t.Error("append path must not regenerate")
	}

	msgs := store.msgs[conv.ID]
	if len(msgs) != 1 || msgs[0].ID != "missing" || msgs[0].Content != "late arrival" {
		t.Fatalf("expected appended message, got %+v", msgs)
	}
}

func TestRegenerateAppendsWhenNoReplyExists(t *testing.T) {
	chat, store, conv := newTestChat(t, domain.ModelFinGenie, echoProvider("fingenie"), echoProvider("bankora"))

	if _, err := store.AppendMessage(context.Background(), "user-1", conv.ID, domain.Message{
		ID: "msg-1", Role: domain.RoleUser, Content: "question",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	msg, err := chat.Regenerate(context.Background(), "user-1", conv.ID, 0)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if msg.Role != domain.RoleAssistant {
		t.Errorf("expected assistant role, got %s", msg.Role)
	}
	if len(store.msgs[conv.ID]) != 2 {
		t.Fatalf("expected appended reply, got %d messages", len(store.msgs[conv.ID]))
	}
}

func TestRegenerateRejectsAssistantIndex(t *testing.T) {
	chat, store, conv := newTestChat(t, domain.ModelFinGenie, echoProvider("fingenie"), echoProvider("bankora"))

	if _, err := store.AppendMessage(context.Background(), "user-1", conv.ID, domain.Message{
		ID: "msg-1", Role: domain.RoleAssistant, Content: "hello",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := chat.Regenerate(context.Background(), "user-1", conv.ID, 0); !errors.Is(err, domain.ErrNotUserMessage) {
		t.Fatalf("expected ErrNotUserMessage, got %v", err)
	}
	if _, err := chat.Regenerate(context.Background(), "user-1", conv.ID, 5); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound for out of range index, got %v", err)
	}
}

func TestMessageOrderMatchesAppendOrder(t *testing.T) {
	chat, store, conv := newTestChat(t, domain.ModelFinGenie, echoProvider("fingenie"), echoProvider("bankora"))

	for i := 0; i < 3; i++ {
		if _, err := chat.Send(context.Background(), "user-1", conv.ID, fmt.Sprintf("question %d", i)); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	msgs, err := store.Messages(context.Background(), "user-1", conv.ID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	want := []string{"question 0", "reply to: question 0", "question 1", "reply to: question 1", "question 2", "reply to: question 2"}
	if len(msgs) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(msgs))
	}
	for i, m := range msgs {
		if m.Content != want[i] {
			t.Errorf("message %d: want %q, got %q", i, want[i], m.Content)
		}
	}
}
