package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxTypeIncome  TxType = "income"
	TxTypeExpense TxType = "expense"
)

type Expense struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

type Transaction struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	TxType      TxType
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// ExpenseSummary is the dashboard aggregation over all of a user's expenses.
type ExpenseSummary struct {
	TotalExpenses     decimal.Decimal
	CategoryBreakdown map[string]decimal.Decimal
	MonthlyTrend      map[string]decimal.Decimal // "2006-01" -> amount
}

// ExpenseCategories mirrors the category set offered by the dashboard forms.
var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Housing",
	"Healthcare",
	"Education",
	"Personal Care",
	"Travel",
	"Gifts & Donations",
	"Investments",
	"Debt Payments",
	"Other",
}
