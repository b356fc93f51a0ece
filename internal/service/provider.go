package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bankora/bankora-api/internal/config"
	"github.com/bankora/bankora-api/internal/domain"
)

// AnswerProvider is a remote text-completion endpoint.
type AnswerProvider interface {
	Name() string
	Answer(ctx context.Context, query string) (string, error)
}

// ProviderRouter selects the provider for a conversation's model type. A
// bankora failure degrades once to fingenie with the query wrapped in a
// role-play prefix; there is no retry beyond that single substitution.
type ProviderRouter struct {
	finGenie AnswerProvider
	bankora  AnswerProvider
}

func NewProviderRouter(finGenie, bankora AnswerProvider) *ProviderRouter {
	return &ProviderRouter{finGenie: finGenie, bankora: bankora}
}

func (r *ProviderRouter) Answer(ctx context.Context, modelType domain.ModelType, query string) (string, error) {
	switch modelType {
	case domain.ModelFinGenie:
		return r.finGenie.Answer(ctx, query)
	case domain.ModelBankora:
		text, err := r.bankora.Answer(ctx, query)
		if err == nil {
			return text, nil
		}
		slog.Warn("bankora provider failed, using fallback", "error", err)
		text, ferr := r.finGenie.Answer(ctx, config.BankoraFallbackPrefix+query)
		if ferr != nil {
			return "", fmt.Errorf("bankora and fallback both failed: %w", ferr)
		}
		return text, nil
	default:
		return "", domain.ErrInvalidModelType
	}
}
