package config

// Defaults for external collaborators
const (
	// DefaultDatabaseURL is used by the import-books command when neither -db nor DATABASE_URL is given
	DefaultDatabaseURL = "sqlite://./bookreviews.db"

	// DefaultGoodreadsBaseURL is the host serving review_counts.json
	DefaultGoodreadsBaseURL = "https://www.goodreads.com"

	// DefaultCoverURLTemplate builds OpenLibrary cover image URLs from an ISBN
	DefaultCoverURLTemplate = "https://covers.openlibrary.org/b/isbn/%s-L.jpg"
)
