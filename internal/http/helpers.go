package http

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/apperrors"
	"github.com/mrlokans/bookreviews/internal/auth"
	"github.com/mrlokans/bookreviews/internal/database"
)

// ErrorResponse is the JSON error body of the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Error Response Helpers ---

// respondError classifies err and renders it as HTML or JSON.
// Unclassified store errors become a 503 "Database error".
func respondError(c *gin.Context, err error) {
	var storeErr *database.StoreError
	if errors.As(err, &storeErr) {
		err = apperrors.StoreFailure(err)
	}
	apperrors.Respond(c, err)
}

// respondBadRequest renders a 400 with message.
func respondBadRequest(c *gin.Context, message string) {
	respondError(c, apperrors.Validation(message))
}

// respondNotFound renders a 404 for resource.
func respondNotFound(c *gin.Context, message string) {
	respondError(c, apperrors.NotFound(message))
}

// --- Rendering ---

// renderPage renders an HTML template with the per-request data every page needs.
func renderPage(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, auth.TemplateData(c, data))
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
