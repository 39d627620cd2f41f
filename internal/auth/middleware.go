package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/apperrors"
)

// ContextKeySession holds the Session of an authenticated request.
const ContextKeySession = "auth_session"

// Identify copies the session identity into the Gin context.
// It must run after SessionLoadSave. Anonymous requests pass through untouched.
func (sm *SessionManager) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, ok := sm.Get(c.Request.Context()); ok {
			c.Set(ContextKeySession, session)
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 403 Unauthorized.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetSession(c); !ok {
			apperrors.Respond(c, apperrors.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// GetSession returns the identity set by Identify.
func GetSession(c *gin.Context) (Session, bool) {
	if v, exists := c.Get(ContextKeySession); exists {
		if session, ok := v.(Session); ok {
			return session, true
		}
	}
	return Session{}, false
}

// GetUserID returns the authenticated user's ID, or 0 for anonymous requests.
func GetUserID(c *gin.Context) uint {
	session, _ := GetSession(c)
	return session.UserID
}

// TemplateData adds the values every page template expects to data:
// the CSRF token and the signed-in user, if any.
func TemplateData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFToken"] = GetCSRFToken(c)
	data["CSRFField"] = CSRFFieldName
	if session, ok := GetSession(c); ok {
		data["User"] = session
	}
	return data
}
