package repository

import (
	"context"
	"fmt"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Transactions struct {
	db *pgxpool.Pool
}

func NewTransactions(db *pgxpool.Pool) *Transactions {
	return &Transactions{db: db}
}

func (r *Transactions) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO transactions (id, user_id, amount, tx_type, category, description, tx_date)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)
		RETURNING created_at`,
		t.ID, t.UserID, t.Amount.String(), t.TxType, t.Category, t.Description, t.Date,
	).Scan(&t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func (r *Transactions) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, amount::text, tx_type, category, description, tx_date, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY tx_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.UserID, &amount, &t.TxType, &t.Category, &t.Description, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Amount = stringToDecimal(amount)
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
