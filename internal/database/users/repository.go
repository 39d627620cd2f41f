// Package users provides database operations for registered users.
//
// # Usage
//
//	repo := users.NewRepository(db.DB, db.Timeout())
//	user, err := repo.CreateUser(ctx, "alice", hash)
package users

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/entities"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNameTaken    = errors.New("user name already taken")
)

// Repository handles all user database operations.
type Repository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

// CreateUser inserts a user and returns it with the store-assigned ID in a single round trip.
// A concurrent registration of the same name loses on the unique index and gets ErrNameTaken.
func (r *Repository) CreateUser(ctx context.Context, name, hash string) (*entities.User, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	user := &entities.User{Name: name, Hash: hash}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrNameTaken
		}
		return nil, database.Wrap("create user", err)
	}
	return user, nil
}

// GetUserByName retrieves a user by exact name.
func (r *Repository) GetUserByName(ctx context.Context, name string) (*entities.User, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user entities.User
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, database.Wrap("get user by name", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, database.Wrap("get user by id", err)
	}
	return &user, nil
}

// NameExists reports whether a user with the given name is registered.
func (r *Repository) NameExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, database.Wrap("check user name", err)
	}
	return count > 0, nil
}
