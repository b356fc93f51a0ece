package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankora/bankora-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userStore interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error)
}

// OpsNotifier pushes noteworthy events to the admin channel. Implementations
// must be safe to call when notifications are disabled.
type OpsNotifier interface {
	Registration(email, displayName string)
	ProviderFailure(modelType string, err error)
}

type UserService struct {
	users    userStore
	notifier OpsNotifier
}

func NewUserService(users userStore, notifier OpsNotifier) *UserService {
	return &UserService{users: users, notifier: notifier}
}

func (s *UserService) Register(ctx context.Context, email, password, displayName string, isAdmin bool) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Registration(user.Email, user.DisplayName)
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	return s.users.UpdateProfile(ctx, userID, upd)
}
