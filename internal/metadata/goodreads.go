// Package metadata looks up third-party review counts and builds cover image URLs.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mrlokans/bookreviews/internal/config"
)

// DefaultTimeout bounds a single review-count lookup.
const DefaultTimeout = 3 * time.Second

// ErrUnavailable is wrapped by every lookup failure. Callers degrade instead of failing the page.
var ErrUnavailable = errors.New("external metadata unavailable")

// BookReviewCounts is one entry of the review_counts.json "books" list.
type BookReviewCounts struct {
	ID                   int64  `json:"id"`
	ISBN                 string `json:"isbn"`
	ISBN13               string `json:"isbn13"`
	RatingsCount         int64  `json:"ratings_count"`
	ReviewsCount         int64  `json:"reviews_count"`
	TextReviewsCount     int64  `json:"text_reviews_count"`
	WorkRatingsCount     int64  `json:"work_ratings_count"`
	WorkReviewsCount     int64  `json:"work_reviews_count"`
	WorkTextReviewsCount int64  `json:"work_text_reviews_count"`
	AverageRating        string `json:"average_rating"`
}

// ReviewCounts is the decoded review_counts.json payload.
type ReviewCounts struct {
	Books []BookReviewCounts `json:"books"`
}

// First returns the first entry. Lookups never return an empty list.
func (r *ReviewCounts) First() BookReviewCounts {
	return r.Books[0]
}

// GoodreadsClient fetches third-party review counts for an ISBN.
type GoodreadsClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewGoodreadsClient creates a review-count client from configuration.
func NewGoodreadsClient(cfg config.Goodreads) *GoodreadsClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultGoodreadsBaseURL
	}
	return &GoodreadsClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.Key,
	}
}

// FetchReviewCounts looks up review counts for isbn.
// Any failure, including a missing API key or an empty result, wraps ErrUnavailable.
func (c *GoodreadsClient) FetchReviewCounts(ctx context.Context, isbn string) (*ReviewCounts, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("isbns", isbn)
	reqURL := c.baseURL + "/book/review_counts.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", "BookReviews/1.0 (https://github.com/mrlokans/bookreviews)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch review counts: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var counts ReviewCounts
	if err := json.NewDecoder(resp.Body).Decode(&counts); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if len(counts.Books) == 0 {
		return nil, fmt.Errorf("%w: no entries for isbn %s", ErrUnavailable, isbn)
	}
	return &counts, nil
}
