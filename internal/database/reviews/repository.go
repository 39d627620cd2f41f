// Package reviews provides database operations for book reviews and their aggregates.
package reviews

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/entities"
)

// ErrAlreadyReviewed is returned when a user submits a second review for the same book.
var ErrAlreadyReviewed = errors.New("book already reviewed by this user")

// Repository handles all review database operations.
type Repository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

// CreateReview inserts a review and commits it.
// The (user_id, book_id) unique index decides races between concurrent submissions.
func (r *Repository) CreateReview(ctx context.Context, review *entities.Review) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(review).Error
	})
	if err != nil {
		if database.IsDuplicate(err) {
			return ErrAlreadyReviewed
		}
		return database.Wrap("create review", err)
	}
	return nil
}

// HasReviewed reports whether userID has reviewed bookID.
func (r *Repository) HasReviewed(ctx context.Context, userID, bookID uint) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Review{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, database.Wrap("check review", err)
	}
	return count > 0, nil
}

// ListForBook returns all reviews of a book joined with the reviewer's name, oldest first.
func (r *Repository) ListForBook(ctx context.Context, bookID uint) ([]entities.ReviewWithAuthor, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows := make([]entities.ReviewWithAuthor, 0)
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, reviews.timestamp, reviews.content, reviews.score, users.name").
		Joins("INNER JOIN users ON reviews.user_id = users.id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.timestamp ASC, reviews.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, database.Wrap("list reviews", err)
	}
	return rows, nil
}

// StatsForBook counts the reviews of a book and averages their scores.
// AverageScore stays nil when there are no reviews.
func (r *Repository) StatsForBook(ctx context.Context, bookID uint) (entities.ReviewStats, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var row struct {
		Count   int64
		Average *float64
	}
	err := r.db.WithContext(ctx).Model(&entities.Review{}).
		Select("COUNT(*) AS count, AVG(CAST(score AS DOUBLE PRECISION)) AS average").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return entities.ReviewStats{}, database.Wrap("review stats", err)
	}

	stats := entities.ReviewStats{Count: row.Count}
	if row.Count > 0 {
		stats.AverageScore = row.Average
	}
	return stats, nil
}
