// Package books provides read access to the book catalog and the bulk import used to populate it.
//
// # Usage
//
//	repo := books.NewRepository(db.DB, db.Timeout())
//	book, err := repo.GetBookByID(ctx, 123)
package books

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookreviews/internal/database"
	"github.com/mrlokans/bookreviews/internal/entities"
)

// DefaultImportBatchSize is the number of rows inserted per statement by ImportBooks.
const DefaultImportBatchSize = 500

var ErrBookNotFound = errors.New("book not found")

// Repository handles all book database operations.
type Repository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, database.Wrap("get book by id", err)
	}
	return &book, nil
}

// GetBookByISBN retrieves a book by exact ISBN.
func (r *Repository) GetBookByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var book entities.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, database.Wrap("get book by isbn", err)
	}
	return &book, nil
}

// RandomBooks returns up to n books sampled uniformly from the whole catalog.
// RANDOM() is understood by both SQLite and PostgreSQL.
func (r *Repository) RandomBooks(ctx context.Context, n int) ([]entities.Book, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var books []entities.Book
	err := r.db.WithContext(ctx).Order("RANDOM()").Limit(n).Find(&books).Error
	if err != nil {
		return nil, database.Wrap("random books", err)
	}
	return books, nil
}

// SearchBooks matches ISBN by prefix and title or author by substring, case-insensitively.
// An empty query matches every book.
func (r *Repository) SearchBooks(ctx context.Context, query string) ([]entities.Book, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	prefix := query + "%"
	substring := "%" + query + "%"

	var books []entities.Book
	err := r.db.WithContext(ctx).
		Where("LOWER(isbn) LIKE LOWER(?) OR LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)",
			prefix, substring, substring).
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, database.Wrap("search books", err)
	}
	return books, nil
}

// CountBooks returns the catalog size.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, database.Wrap("count books", err)
	}
	return count, nil
}

// ImportBooks inserts books in batches inside a single transaction and returns the number inserted.
// The import is all-or-nothing. It runs without the per-operation store timeout since it is
// an offline bulk load; cancel ctx to abort it.
func (r *Repository) ImportBooks(ctx context.Context, books []entities.Book, batchSize int) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultImportBatchSize
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(books, batchSize).Error
	})
	if err != nil {
		return 0, database.Wrap("import books", err)
	}
	return len(books), nil
}
