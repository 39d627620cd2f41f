package logging

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader     = "X-Request-Id"
	ContextKeyRequestID = "request_id"
)

// RequestID propagates an incoming X-Request-Id or generates one when absent.
// The id is echoed in the response header, stored in the Gin context, and
// attached to a child logger reachable through FromContext.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set(ContextKeyRequestID, requestID)

		logger := slog.Default().With("request_id", requestID)
		c.Request = c.Request.WithContext(ContextWithLogger(c.Request.Context(), logger))

		c.Next()
	}
}

// RequestLog emits one structured line per request once the handler chain finishes.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		FromContext(c.Request.Context()).Log(c.Request.Context(), level, "http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
