package http

import (
	"context"

	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/metadata"
)

// This file consolidates the store interfaces used by HTTP controllers.
// The database repositories satisfy them; tests substitute fakes where a
// failure has to be forced.

// BookStore provides read access to the catalog.
type BookStore interface {
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*entities.Book, error)
	RandomBooks(ctx context.Context, n int) ([]entities.Book, error)
	SearchBooks(ctx context.Context, query string) ([]entities.Book, error)
}

// ReviewStore reads and writes reviews.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *entities.Review) error
	HasReviewed(ctx context.Context, userID, bookID uint) (bool, error)
	ListForBook(ctx context.Context, bookID uint) ([]entities.ReviewWithAuthor, error)
	StatsForBook(ctx context.Context, bookID uint) (entities.ReviewStats, error)
}

// ReviewCountsFetcher looks up third-party review counts.
type ReviewCountsFetcher interface {
	FetchReviewCounts(ctx context.Context, isbn string) (*metadata.ReviewCounts, error)
}

// CoverURLer builds cover image URLs.
type CoverURLer interface {
	CoverURL(isbn string) string
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
