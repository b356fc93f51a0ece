package api

import (
	"github.com/bankora/bankora-api/internal/config"
	"github.com/bankora/bankora-api/internal/service"
)

// Handler holds all dependencies needed by the HTTP endpoints.
type Handler struct {
	cfg            *config.Config
	userService    *service.UserService
	convService    *service.ConversationService
	chatService    *service.ChatService
	expenseService *service.ExpenseService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg            *config.Config
	UserService    *service.UserService
	ConvService    *service.ConversationService
	ChatService    *service.ChatService
	ExpenseService *service.ExpenseService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:            deps.Cfg,
		userService:    deps.UserService,
		convService:    deps.ConvService,
		chatService:    deps.ChatService,
		expenseService: deps.ExpenseService,
	}
}
