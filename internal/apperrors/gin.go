package apperrors

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorTemplate is the HTML template rendered for browser-facing failures.
const ErrorTemplate = "error.html"

// Respond writes err to the client and aborts the handler chain.
// Requests under /api/ or asking for JSON get {"error": message}; everything else gets the error page.
// Store and internal failures are logged with their cause, which is never rendered.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	status := kind.Status()
	message := MessageOf(err)

	switch kind {
	case KindStoreFailure, KindInternal:
		slog.Error("request failed",
			"kind", kind.String(),
			"path", c.Request.URL.Path,
			"error", err,
		)
	default:
		slog.Debug("request rejected", "kind", kind.String(), "path", c.Request.URL.Path, "message", message)
	}

	if wantsJSON(c) {
		c.AbortWithStatusJSON(status, gin.H{"error": message})
		return
	}
	c.HTML(status, ErrorTemplate, gin.H{
		"Title":   "Error",
		"Status":  status,
		"Message": message,
	})
	c.Abort()
}

func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
