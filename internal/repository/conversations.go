package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Conversations keeps the conversations table and the per-user summary
// table in step. Every write that touches both runs in one transaction.
type Conversations struct {
	db *pgxpool.Pool
}

func NewConversations(db *pgxpool.Pool) *Conversations {
	return &Conversations{db: db}
}

func (r *Conversations) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO conversations (id, user_id, model_type, title)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		conv.ID, conv.UserID, conv.ModelType, conv.Title,
	)
	if err := row.Scan(&conv.CreatedAt, &conv.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_conversations (user_id, conversation_id, title, model_type, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		conv.UserID, conv.ID, conv.Title, conv.ModelType, conv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert summary: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return conv, nil
}

func (r *Conversations) Rename(ctx context.Context, userID, conversationID, title string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE conversations SET title = $3, updated_at = NOW()
		WHERE id = $2 AND user_id = $1`,
		userID, conversationID, title,
	)
	if err != nil {
		return fmt.Errorf("update conversation title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConversationNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_conversations SET title = $3, updated_at = NOW()
		WHERE user_id = $1 AND conversation_id = $2`,
		userID, conversationID, title,
	)
	if err != nil {
		return fmt.Errorf("update summary title: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Conversations) Delete(ctx context.Context, userID, conversationID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM conversations WHERE id = $2 AND user_id = $1`,
		userID, conversationID,
	)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConversationNotFound
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM user_conversations WHERE user_id = $1 AND conversation_id = $2`,
		userID, conversationID,
	)
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}

	return tx.Commit(ctx)
}

// ListSummaries reads only the denormalized summary table; it does not
// verify the referenced conversation rows still exist.
func (r *Conversations) ListSummaries(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT conversation_id, title, model_type, updated_at
		FROM user_conversations
		WHERE user_id = $1
		ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ConversationSummary
	for rows.Next() {
		var s domain.ConversationSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.ModelType, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *Conversations) Get(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, model_type, title, created_at, updated_at
		FROM conversations
		WHERE id = $2 AND user_id = $1`,
		userID, conversationID,
	).Scan(&conv.ID, &conv.UserID, &conv.ModelType, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &conv, nil
}

// Messages returns the conversation's messages in array order.
func (r *Conversations) Messages(ctx context.Context, userID, conversationID string) ([]domain.Message, error) {
	if _, err := r.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, role, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY position`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// AppendMessage adds a message at the next position and bumps updated_at on
// the conversation and its summary row, all in one transaction.
func (r *Conversations) AppendMessage(ctx context.Context, userID, conversationID string, msg domain.Message) (*domain.Message, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockConversation(ctx, tx, userID, conversationID); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO messages (id, conversation_id, position, role, content)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0), $3, $4
		FROM messages WHERE conversation_id = $2
		RETURNING created_at`,
		msg.ID, conversationID, msg.Role, msg.Content,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	if err := bumpUpdatedAt(ctx, tx, userID, conversationID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &msg, nil
}

// UpdateMessageContent replaces content and timestamp in place, keeping the
// message id and position. Returns ErrMessageNotFound when no id matches.
func (r *Conversations) UpdateMessageContent(ctx context.Context, userID, conversationID, messageID, content string) (*domain.Message, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockConversation(ctx, tx, userID, conversationID); err != nil {
		return nil, err
	}

	var msg domain.Message
	err = tx.QueryRow(ctx, `
		UPDATE messages SET content = $3, created_at = NOW()
		WHERE id = $2 AND conversation_id = $1
		RETURNING id, role, content, created_at`,
		conversationID, messageID, content,
	).Scan(&msg.ID, &msg.Role, &msg.Content, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("update message: %w", err)
	}

	if err := bumpUpdatedAt(ctx, tx, userID, conversationID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &msg, nil
}

// ReplaceAt overwrites the message at the given position, keeping its id,
// or appends a fresh message when the position is past the end.
func (r *Conversations) ReplaceAt(ctx context.Context, userID, conversationID string, position int, role domain.Role, content string) (*domain.Message, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockConversation(ctx, tx, userID, conversationID); err != nil {
		return nil, err
	}

	var msg domain.Message
	err = tx.QueryRow(ctx, `
		UPDATE messages SET role = $3, content = $4, created_at = NOW()
		WHERE conversation_id = $1 AND position = $2
		RETURNING id, role, content, created_at`,
		conversationID, position, role, content,
	).Scan(&msg.ID, &msg.Role, &msg.Content, &msg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		msg = domain.Message{ID: uuid.NewString(), Role: role, Content: content}
		err = tx.QueryRow(ctx, `
			INSERT INTO messages (id, conversation_id, position, role, content)
			SELECT $1, $2, COALESCE(MAX(position) + 1, 0), $3, $4
			FROM messages WHERE conversation_id = $2
			RETURNING created_at`,
			msg.ID, conversationID, msg.Role, msg.Content,
		).Scan(&msg.CreatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("replace message: %w", err)
	}

	if err := bumpUpdatedAt(ctx, tx, userID, conversationID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &msg, nil
}

// lockConversation verifies ownership and serializes message writers on the
// conversation row.
func lockConversation(ctx context.Context, tx pgx.Tx, userID, conversationID string) error {
	var id string
	err := tx.QueryRow(ctx, `
		SELECT id FROM conversations WHERE id = $2 AND user_id = $1 FOR UPDATE`,
		userID, conversationID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrConversationNotFound
		}
		return fmt.Errorf("lock conversation: %w", err)
	}
	return nil
}

func bumpUpdatedAt(ctx context.Context, tx pgx.Tx, userID, conversationID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE conversations SET updated_at = NOW() WHERE id = $1`,
		conversationID,
	)
	if err != nil {
		return fmt.Errorf("bump conversation updated_at: %w", err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE user_conversations SET updated_at = NOW()
		WHERE user_id = $1 AND conversation_id = $2`,
		userID, conversationID,
	)
	if err != nil {
		return fmt.Errorf("bump summary updated_at: %w", err)
	}
	return nil
}
