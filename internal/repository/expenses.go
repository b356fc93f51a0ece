package repository

import (
	"context"
	"fmt"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Expenses struct {
	db *pgxpool.Pool
}

func NewExpenses(db *pgxpool.Pool) *Expenses {
	return &Expenses{db: db}
}

// Create inserts the expense and its mirrored dashboard transaction in one
// transaction.
func (r *Expenses) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO expenses (id, user_id, amount, category, description, expense_date)
		VALUES ($1, $2, $3::numeric, $4, $5, $6)
		RETURNING created_at`,
		e.ID, e.UserID, e.Amount.String(), e.Category, e.Description, e.Date,
	).Scan(&e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, user_id, amount, tx_type, category, description, tx_date)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)`,
		uuid.NewString(), e.UserID, e.Amount.String(), domain.TxTypeExpense, e.Category, e.Description, e.Date,
	)
	if err != nil {
		return nil, fmt.Errorf("insert mirrored transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return e, nil
}

func (r *Expenses) ListByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, amount::text, category, description, expense_date, created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY expense_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		var amount string
		if err := rows.Scan(&e.ID, &e.UserID, &amount, &e.Category, &e.Description, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Amount = stringToDecimal(amount)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *Expenses) Delete(ctx context.Context, userID, expenseID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM expenses WHERE id = $2 AND user_id = $1`,
		userID, expenseID,
	)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}
