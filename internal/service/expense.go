package service

import (
	"context"
	"strings"
	"time"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type expenseStore interface {
	Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Expense, error)
	Delete(ctx context.Context, userID, expenseID string) error
}

type transactionStore interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
}

type ExpenseService struct {
	expenses expenseStore
	txs      transactionStore
}

func NewExpenseService(expenses expenseStore, txs transactionStore) *ExpenseService {
	return &ExpenseService{expenses: expenses, txs: txs}
}

// AddExpense records the expense; the store mirrors it into the
// transaction feed.
func (s *ExpenseService) AddExpense(ctx context.Context, userID string, amount decimal.Decimal, category, description string, date time.Time) (*domain.Expense, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if strings.TrimSpace(category) == "" {
		return nil, domain.ErrEmptyContent
	}
	return s.expenses.Create(ctx, &domain.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	})
}

func (s *ExpenseService) ListExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	return s.expenses.ListByUser(ctx, userID)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return s.expenses.Delete(ctx, userID, expenseID)
}

func (s *ExpenseService) AddTransaction(ctx context.Context, userID string, amount decimal.Decimal, txType domain.TxType, category, description string, date time.Time) (*domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if txType != domain.TxTypeIncome && txType != domain.TxTypeExpense {
		return nil, domain.ErrInvalidTxType
	}
	return s.txs.Create(ctx, &domain.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		TxType:      txType,
		Category:    category,
		Description: description,
		Date:        date,
	})
}

func (s *ExpenseService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.txs.ListByUser(ctx, userID)
}

// Summary folds all of the user's expenses into the dashboard aggregation:
// total, per-category sums and per-month sums keyed by "2006-01".
func (s *ExpenseService) Summary(ctx context.Context, userID string) (*domain.ExpenseSummary, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &domain.ExpenseSummary{
		TotalExpenses:     decimal.Zero,
		CategoryBreakdown: map[string]decimal.Decimal{},
		MonthlyTrend:      map[string]decimal.Decimal{},
	}
	for _, e := range expenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		summary.CategoryBreakdown[e.Category] = summary.CategoryBreakdown[e.Category].Add(e.Amount)
		month := e.Date.Format("2006-01")
		summary.MonthlyTrend[month] = summary.MonthlyTrend[month].Add(e.Amount)
	}
	return summary, nil
}
