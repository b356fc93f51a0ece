package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrInvalidModelType     = errors.New("invalid model type")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidTxType        = errors.New("invalid transaction type")
	ErrEmptyContent         = errors.New("message content cannot be empty")
	ErrNotUserMessage       = errors.New("message is not a user message")
)
