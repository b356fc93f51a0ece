package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Users struct {
	db *pgxpool.Pool
}

func NewUsers(db *pgxpool.Pool) *Users {
	return &Users{db: db}
}

const userColumns = `id, email, password_hash, display_name, phone_number, address, occupation,
	monthly_income::text, savings_goal::text, is_admin, created_at, updated_at`

func (r *Users) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.ID, u.Email, u.PasswordHash, u.DisplayName, u.IsAdmin,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *Users) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// UpdateProfile applies a partial profile update; nil fields keep their
// current value.
func (r *Users) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users SET
			display_name = COALESCE($2, display_name),
			phone_number = COALESCE($3, phone_number),
			address = COALESCE($4, address),
			occupation = COALESCE($5, occupation),
			monthly_income = COALESCE($6::numeric, monthly_income),
			savings_goal = COALESCE($7::numeric, savings_goal),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		userID, upd.DisplayName, upd.PhoneNumber, upd.Address, upd.Occupation,
		decimalPtrToString(upd.MonthlyIncome), decimalPtrToString(upd.SavingsGoal),
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var monthlyIncome, savingsGoal *string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.PhoneNumber,
		&u.Address, &u.Occupation, &monthlyIncome, &savingsGoal,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.MonthlyIncome = stringToDecimalPtr(monthlyIncome)
	u.SavingsGoal = stringToDecimalPtr(savingsGoal)
	return &u, nil
}
