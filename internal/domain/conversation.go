package domain

import "time"

// ModelType selects which answer provider a conversation is bound to.
type ModelType string

const (
	ModelFinGenie ModelType = "fingenie"
	ModelBankora  ModelType = "bankora"
)

func (m ModelType) Valid() bool {
	return m == ModelFinGenie || m == ModelBankora
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Conversation struct {
	ID        string
	UserID    string
	ModelType ModelType
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// ConversationSummary is the denormalized listing entry kept per user.
type ConversationSummary struct {
	ID        string
	Title     string
	ModelType ModelType
	UpdatedAt time.Time
}

// ConversationLists partitions a user's summaries by model type, each
// sorted most-recently-updated first.
type ConversationLists struct {
	FinGenie []ConversationSummary
	Bankora  []ConversationSummary
}
