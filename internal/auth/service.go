package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookreviews/internal/apperrors"
	"github.com/mrlokans/bookreviews/internal/config"
	"github.com/mrlokans/bookreviews/internal/database/users"
	"github.com/mrlokans/bookreviews/internal/entities"
)

var (
	ErrUsernameRequired    = apperrors.Validation("Username is required")
	ErrPasswordRequired    = apperrors.Validation("Password is required")
	ErrConfirmationMissing = apperrors.Validation("Password and confirmation are required")
	ErrConfirmationMatch   = apperrors.Validation("Password and confirmation should match")
)

// UserStore is the slice of the users repository the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, hash string) (*entities.User, error)
	GetUserByName(ctx context.Context, name string) (*entities.User, error)
	NameExists(ctx context.Context, name string) (bool, error)
}

// Service handles registration and credential checks.
type Service struct {
	users      UserStore
	bcryptCost int
}

// NewService creates a new authentication service.
func NewService(users UserStore, cfg config.Auth) *Service {
	return &Service{
		users:      users,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register validates the form fields, hashes the password and creates the user.
// The name pre-check only saves a bcrypt round; the unique index on users.name decides races.
func (s *Service) Register(ctx context.Context, name, password, confirmation string) (*entities.User, error) {
	if name == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" || confirmation == "" {
		return nil, ErrConfirmationMissing
	}
	if password != confirmation {
		return nil, ErrConfirmationMatch
	}

	exists, err := s.users.NameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check user name: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameTaken
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, name, hash)
	if err != nil {
		if errors.Is(err, users.ErrNameTaken) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user whose name and password match.
func (s *Service) Authenticate(ctx context.Context, name, password string) (*entities.User, error) {
	if name == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, apperrors.ErrNoSuchUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := CheckPassword(password, user.Hash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidPassword
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}
