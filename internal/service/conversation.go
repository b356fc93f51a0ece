package service

import (
	"context"
	"strings"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/google/uuid"
)

type conversationStore interface {
	Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	Rename(ctx context.Context, userID, conversationID, title string) error
	Delete(ctx context.Context, userID, conversationID string) error
	ListSummaries(ctx context.Context, userID string) ([]domain.ConversationSummary, error)
	Get(ctx context.Context, userID, conversationID string) (*domain.Conversation, error)
	Messages(ctx context.Context, userID, conversationID string) ([]domain.Message, error)
	AppendMessage(ctx context.Context, userID, conversationID string, msg domain.Message) (*domain.Message, error)
	UpdateMessageContent(ctx context.Context, userID, conversationID, messageID, content string) (*domain.Message, error)
	ReplaceAt(ctx context.Context, userID, conversationID string, position int, role domain.Role, content string) (*domain.Message, error)
}

type ConversationService struct {
	convs conversationStore
}

func NewConversationService(convs conversationStore) *ConversationService {
	return &ConversationService{convs: convs}
}

func (s *ConversationService) Create(ctx context.Context, userID string, modelType domain.ModelType, title string) (*domain.Conversation, error) {
	if !modelType.Valid() {
		return nil, domain.ErrInvalidModelType
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "New Chat"
	}
	return s.convs.Create(ctx, &domain.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		ModelType: modelType,
		Title:     title,
	})
}

func (s *ConversationService) Rename(ctx context.Context, userID, conversationID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.ErrEmptyContent
	}
	return s.convs.Rename(ctx, userID, conversationID, title)
}

func (s *ConversationService) Delete(ctx context.Context, userID, conversationID string) error {
	return s.convs.Delete(ctx, userID, conversationID)
}

// List partitions the user's conversation summaries by model type, most
// recently updated first.
func (s *ConversationService) List(ctx context.Context, userID string) (*domain.ConversationLists, error) {
	summaries, err := s.convs.ListSummaries(ctx, userID)
	if err != nil {
		return nil, err
	}

	lists := &domain.ConversationLists{
		FinGenie: []domain.ConversationSummary{},
		Bankora:  []domain.ConversationSummary{},
	}
	for _, sum := range summaries {
		switch sum.ModelType {
		case domain.ModelFinGenie:
			lists.FinGenie = append(lists.FinGenie, sum)
		case domain.ModelBankora:
			lists.Bankora = append(lists.Bankora, sum)
		}
	}
	return lists, nil
}

func (s *ConversationService) Get(ctx context.Context, userID, conversationID string) (*domain.Conversation, []domain.Message, error) {
	conv, err := s.convs.Get(ctx, userID, conversationID)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.convs.Messages(ctx, userID, conversationID)
	if err != nil {
		return nil, nil, err
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return conv, msgs, nil
}
