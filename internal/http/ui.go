package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexSampleSize is the number of random books shown on the home page.
const IndexSampleSize = 5

// UIController serves the catalog pages: home and search.
type UIController struct {
	books BookStore
}

func NewUIController(books BookStore) *UIController {
	return &UIController{books: books}
}

// IndexPage shows a fresh random sample of the catalog on every request.
func (controller *UIController) IndexPage(c *gin.Context) {
	books, err := controller.books.RandomBooks(c.Request.Context(), IndexSampleSize)
	if err != nil {
		respondError(c, err)
		return
	}

	renderPage(c, http.StatusOK, "index.html", gin.H{
		"Title": "Book Reviews",
		"Books": books,
	})
}

// SearchPage lists books whose ISBN starts with q or whose title or author contains it.
// A missing q searches for the empty string and lists the whole catalog.
func (controller *UIController) SearchPage(c *gin.Context) {
	query := c.Query("q")

	books, err := controller.books.SearchBooks(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	renderPage(c, http.StatusOK, "search.html", gin.H{
		"Title": "Search",
		"Query": query,
		"Books": books,
	})
}
