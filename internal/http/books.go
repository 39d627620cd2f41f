package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/bookreviews/internal/apperrors"
	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/database/books"
	"github.com/mrlokans/bookreviews/internal/database/reviews"
	"github.com/mrlokans/bookreviews/internal/entities"
	"github.com/mrlokans/bookreviews/internal/logging"
	"github.com/mrlokans/bookreviews/internal/metadata"
)

// BookLookupResponse is the public JSON view of a book.
// Field order is the wire key order.
type BookLookupResponse struct {
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Year         int      `json:"year"`
	ISBN         string   `json:"isbn"`
	ReviewCount  int64    `json:"review_count"`
	AverageScore *float64 `json:"average_score"`
}

// BooksController serves the book page, review submission and the JSON lookup.
type BooksController struct {
	books        BookStore
	reviews      ReviewStore
	reviewCounts ReviewCountsFetcher
	covers       CoverURLer
}

func NewBooksController(books BookStore, reviews ReviewStore, reviewCounts ReviewCountsFetcher, covers CoverURLer) *BooksController {
	return &BooksController{
		books:        books,
		reviews:      reviews,
		reviewCounts: reviewCounts,
		covers:       covers,
	}
}

// BookPage renders a book with its reviews, local stats and third-party review counts.
// The lookups are independent and run concurrently. A metadata failure only hides the
// external rating; a store failure fails the page.
func (bc *BooksController) BookPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	book, err := bc.books.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "No such book with this id")
			return
		}
		respondError(c, err)
		return
	}

	var (
		reviewed   bool
		reviewList []entities.ReviewWithAuthor
		stats      entities.ReviewStats
		external   *metadata.BookReviewCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	if session, signedIn := auth.GetSession(c); signedIn {
		g.Go(func() error {
			var err error
			reviewed, err = bc.reviews.HasReviewed(gctx, session.UserID, book.ID)
			return err
		})
	}
	g.Go(func() error {
		var err error
		reviewList, err = bc.reviews.ListForBook(gctx, book.ID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = bc.reviews.StatsForBook(gctx, book.ID)
		return err
	})
	if bc.reviewCounts != nil {
		g.Go(func() error {
			counts, err := bc.reviewCounts.FetchReviewCounts(gctx, book.ISBN)
			if err != nil {
				logging.FromContext(ctx).Warn("review counts unavailable", "isbn", book.ISBN, "error", err)
				return nil
			}
			first := counts.First()
			external = &first
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		respondError(c, err)
		return
	}

	cover := ""
	if bc.covers != nil {
		cover = bc.covers.CoverURL(book.ISBN)
	}

	renderPage(c, http.StatusOK, "book.html", gin.H{
		"Title":    book.Title,
		"Book":     book,
		"Cover":    cover,
		"Reviewed": reviewed,
		"Reviews":  reviewList,
		"Stats":    stats,
		"External": external,
	})
}

// SubmitReview stores the signed-in user's review and redirects back to the book.
// Route it behind auth.RequireAuth so anonymous posts are rejected before any lookup.
func (bc *BooksController) SubmitReview(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := bc.books.GetBookByID(ctx, id); err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "No such book with this id")
			return
		}
		respondError(c, err)
		return
	}

	content := c.PostForm("content")
	if content == "" {
		respondBadRequest(c, "Please write a review")
		return
	}
	score, err := strconv.Atoi(strings.TrimSpace(c.PostForm("score")))
	if err != nil {
		respondBadRequest(c, "Please rate a book")
		return
	}

	review := &entities.Review{
		BookID:  id,
		UserID:  session.UserID,
		Content: content,
		Score:   score,
	}
	if err := bc.reviews.CreateReview(ctx, review); err != nil {
		if errors.Is(err, reviews.ErrAlreadyReviewed) {
			respondError(c, apperrors.ErrAlreadyReviewed)
			return
		}
		respondError(c, err)
		return
	}

	logging.FromContext(ctx).Info("review submitted", "book_id", id, "user_id", session.UserID)
	c.Redirect(http.StatusFound, fmt.Sprintf("/book/%d", id))
}

// Lookup returns the public JSON summary of the book with the given ISBN.
// average_score is null when the book has no reviews.
func (bc *BooksController) Lookup(c *gin.Context) {
	ctx := c.Request.Context()

	book, err := bc.books.GetBookByISBN(ctx, c.Param("isbn"))
	if err != nil {
		if errors.Is(err, books.ErrBookNotFound) {
			respondNotFound(c, "book not found")
			return
		}
		respondError(c, err)
		return
	}

	stats, err := bc.reviews.StatsForBook(ctx, book.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BookLookupResponse{
		Title:        book.Title,
		Author:       book.Author,
		Year:         book.Year,
		ISBN:         book.ISBN,
		ReviewCount:  stats.Count,
		AverageScore: stats.AverageScore,
	})
}
