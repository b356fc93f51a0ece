package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	IsAdmin      bool

	// Profile
	PhoneNumber   string
	Address       string
	Occupation    string
	MonthlyIncome *decimal.Decimal
	SavingsGoal   *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileUpdate carries the fields a user may change on their profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName   *string
	PhoneNumber   *string
	Address       *string
	Occupation    *string
	MonthlyIncome *decimal.Decimal
	SavingsGoal   *decimal.Decimal
}
