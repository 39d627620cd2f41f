package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookreviews/internal/config"
)

const reviewCountsBody = `{"books":[{"id":29207858,"isbn":"1632168146","isbn13":"9781632168146",
"ratings_count":0,"reviews_count":2,"text_reviews_count":0,"work_ratings_count":26,
"work_reviews_count":113,"work_text_reviews_count":10,"average_rating":"4.04"}]}`

func newTestClient(serverURL, key string) *GoodreadsClient {
	return &GoodreadsClient{
		httpClient: &http.Client{Timeout: time.Second},
		baseURL:    serverURL,
		apiKey:     key,
	}
}

func TestFetchReviewCounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book/review_counts.json", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "1632168146", r.URL.Query().Get("isbns"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reviewCountsBody))
	}))
	defer server.Close()

	counts, err := newTestClient(server.URL, "secret").FetchReviewCounts(context.Background(), "1632168146")
	require.NoError(t, err)

	first := counts.First()
	assert.Equal(t, "9781632168146", first.ISBN13)
	assert.Equal(t, int64(26), first.WorkRatingsCount)
	assert.Equal(t, "4.04", first.AverageRating)
}

func TestFetchReviewCounts_Failures(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		handler http.HandlerFunc
	}{
		{
			name: "missing api key",
			key:  "",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("no request should be made without a key")
			},
		},
		{
			name: "non-200 status",
			key:  "k",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "malformed body",
			key:  "k",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
		{
			name: "empty books list",
			key:  "k",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"books":[]}`))
			},
		},
		{
			name: "timeout",
			key:  "k",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(2 * time.Second):
				case <-r.Context().Done():
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(server.URL, tt.key)
			client.httpClient.Timeout = 100 * time.Millisecond

			counts, err := client.FetchReviewCounts(context.Background(), "0380795272")
			assert.Nil(t, counts)
			assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
		})
	}
}

func TestFetchReviewCounts_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(reviewCountsBody))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL, "k").FetchReviewCounts(ctx, "1632168146")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewGoodreadsClient_Defaults(t *testing.T) {
	client := NewGoodreadsClient(config.Goodreads{Key: "k", BaseURL: "https://example.com/"})

	assert.Equal(t, "https://example.com", client.baseURL)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"978-0-13-468599-1", "9780134685991"},
		{"0-13-468599-6", "0134685996"},
		{"978 0 13 468599 1", "9780134685991"},
		{"0380795272", "0380795272"},
		{"123", ""},
		{"", ""},
		{"  978-0-13-468599-1  ", "9780134685991"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := normalizeISBN(tt.input); result != tt.expected {
				t.Errorf("normalizeISBN(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCoverURL(t *testing.T) {
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/0380795272-L.jpg", CoverURL("0380795272"))
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/9780134685991-L.jpg", CoverURL("978-0-13-468599-1"))
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/abc-L.jpg", CoverURL("abc"))

	custom := NewCoverURLBuilder("https://img.example.com/%s.png")
	assert.Equal(t, "https://img.example.com/0380795272.png", custom.CoverURL("0380795272"))

	invalid := NewCoverURLBuilder("https://img.example.com/static.png")
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/0380795272-L.jpg", invalid.CoverURL("0380795272"))
}
