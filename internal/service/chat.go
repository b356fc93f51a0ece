package service

import (
	"context"
	"strings"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/google/uuid"
)

// ChatService runs the message send/edit/regenerate flow against the
// conversation store and the answer providers.
type ChatService struct {
	convs     conversationStore
	providers *ProviderRouter
	notifier  OpsNotifier
}

func NewChatService(convs conversationStore, providers *ProviderRouter, notifier OpsNotifier) *ChatService {
	return &ChatService{convs: convs, providers: providers, notifier: notifier}
}

type SendResult struct {
	UserMessage      *domain.Message
	AssistantMessage *domain.Message
}

// Send appends the user message, queries the conversation's provider and
// appends the assistant reply. When both the provider and its fallback fail,
// the user message stays persisted and no assistant turn is written.
func (s *ChatService) Send(ctx context.Context, userID, conversationID, text string) (*SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyContent
	}

	conv, err := s.convs.Get(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	userMsg, err := s.convs.AppendMessage(ctx, userID, conversationID, domain.Message{
		ID:      uuid.NewString(),
		Role:    domain.RoleUser,
		Content: text,
	})
	if err != nil {
		return nil, err
	}

	answer, err := s.providers.Answer(ctx, conv.ModelType, text)
	if err != nil {
		s.notifier.ProviderFailure(string(conv.ModelType), err)
		return nil, err
	}

	assistantMsg, err := s.convs.AppendMessage(ctx, userID, conversationID, domain.Message{
		ID:      uuid.NewString(),
		Role:    domain.RoleAssistant,
		Content: answer,
	})
	if err != nil {
		return nil, err
	}

	return &SendResult{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

type EditResult struct {
	Message     *domain.Message
	Regenerated *domain.Message
}

// Edit replaces the matching message's content and timestamp in place. When
// no message matches the id, the message is appended instead. Editing a user
// message that already has a reply triggers exactly one regenerate attempt
// for the message that follows it.
func (s *ChatService) Edit(ctx context.Context, userID, conversationID string, msg domain.Message) (*EditResult, error) {
	msg.Content = strings.TrimSpace(msg.Content)
	if msg.Content == "" {
		return nil, domain.ErrEmptyContent
	}

	msgs, err := s.convs.Messages(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, m := range msgs {
		if m.ID == msg.ID {
			index = i
			break
		}
	}

	if index < 0 {
		appended, err := s.convs.AppendMessage(ctx, userID, conversationID, msg)
		if err != nil {
			return nil, err
		}
		return &EditResult{Message: appended}, nil
	}

	updated, err := s.convs.UpdateMessageContent(ctx, userID, conversationID, msg.ID, msg.Content)
	if err != nil {
		return nil, err
	}

	result := &EditResult{Message: updated}
	if msgs[index].Role == domain.RoleUser && index < len(msgs)-1 {
		regenerated, err := s.Regenerate(ctx, userID, conversationID, index)
		if err != nil {
			return nil, err
		}
		result.Regenerated = regenerated
	}
	return result, nil
}

// Regenerate re-queries the provider with the user message at index and
// overwrites the reply at index+1, or appends one when none exists yet.
// Last write wins; there is no concurrency token.
func (s *ChatService) Regenerate(ctx context.Context, userID, conversationID string, index int) (*domain.Message, error) {
	conv, err := s.convs.Get(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.convs.Messages(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(msgs) {
		return nil, domain.ErrMessageNotFound
	}
	if msgs[index].Role != domain.RoleUser {
		return nil, domain.ErrNotUserMessage
	}

	answer, err := s.providers.Answer(ctx, conv.ModelType, msgs[index].Content)
	if err != nil {
		s.notifier.ProviderFailure(string(conv.ModelType), err)
		return nil, err
	}

	return s.convs.ReplaceAt(ctx, userID, conversationID, index+1, domain.RoleAssistant, answer)
}
