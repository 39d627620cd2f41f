package metadata

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mrlokans/bookreviews/internal/config"
)

// CoverURLBuilder formats cover image URLs from a template with a single %s for the ISBN.
type CoverURLBuilder struct {
	template string
}

func NewCoverURLBuilder(template string) *CoverURLBuilder {
	if template == "" || strings.Count(template, "%s") != 1 {
		template = config.DefaultCoverURLTemplate
	}
	return &CoverURLBuilder{template: template}
}

// CoverURL returns the cover image URL for isbn. It never fails; unknown ISBNs
// simply yield a URL the cover service answers with a placeholder.
func (b *CoverURLBuilder) CoverURL(isbn string) string {
	key := normalizeISBN(isbn)
	if key == "" {
		key = strings.TrimSpace(isbn)
	}
	return fmt.Sprintf(b.template, url.PathEscape(key))
}

// CoverURL formats isbn against the default OpenLibrary template.
func CoverURL(isbn string) string {
	return NewCoverURLBuilder("").CoverURL(isbn)
}

// normalizeISBN strips separators and returns the ISBN-10/13, or "" if the length is wrong.
func normalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	isbn = strings.TrimSpace(isbn)

	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}
	return isbn
}
