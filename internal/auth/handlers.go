package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookreviews/internal/apperrors"
)

const (
	loginTemplate    = "login.html"
	registerTemplate = "register.html"
)

// AuthController handles registration, login and logout.
// Pages are rendered with the engine's HTML templates.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/logout", ac.Logout)
}

// RegisterPage clears the session and renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	if !ac.clearSession(c) {
		return
	}
	ac.renderForm(c, http.StatusOK, registerTemplate, "Register", gin.H{})
}

// Register handles the registration form submission.
func (ac *AuthController) Register(c *gin.Context) {
	if !ac.clearSession(c) {
		return
	}

	username := c.PostForm("username")
	user, err := ac.service.Register(c.Request.Context(), username, c.PostForm("password"), c.PostForm("confirmation"))
	if err != nil {
		ac.fail(c, registerTemplate, "Register", username, err)
		return
	}

	if err := ac.sessionManager.Set(c.Request.Context(), user.ID, user.Name); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	slog.Info("user registered", "user_id", user.ID)
	c.Redirect(http.StatusFound, "/")
}

// LoginPage clears any session and renders a fresh login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if !ac.clearSession(c) {
		return
	}
	ac.renderForm(c, http.StatusOK, loginTemplate, "Log in", gin.H{})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	if !ac.clearSession(c) {
		return
	}

	username := c.PostForm("username")
	user, err := ac.service.Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		ac.fail(c, loginTemplate, "Log in", username, err)
		return
	}

	if err := ac.sessionManager.Set(c.Request.Context(), user.ID, user.Name); err != nil {
		apperrors.Respond(c, apperrors.Internal(err))
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session unconditionally and redirects home.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessionManager.Clear(c.Request.Context()); err != nil {
		slog.Warn("failed to clear session on logout", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) clearSession(c *gin.Context) bool {
	if err := ac.sessionManager.Clear(c.Request.Context()); err != nil {
		apperrors.Respond(c, apperrors.StoreFailure(err))
		return false
	}
	// The identity loaded for this request is stale once the session is gone
	delete(c.Keys, ContextKeySession)
	return true
}

// fail re-renders the form for validation errors and falls back to the error page otherwise.
func (ac *AuthController) fail(c *gin.Context, tmpl, title, username string, err error) {
	if apperrors.KindOf(err) != apperrors.KindValidation {
		apperrors.Respond(c, err)
		return
	}
	ac.renderForm(c, apperrors.StatusOf(err), tmpl, title, gin.H{
		"Username": username,
		"Error":    apperrors.MessageOf(err),
	})
}

func (ac *AuthController) renderForm(c *gin.Context, status int, tmpl, title string, data gin.H) {
	data["Title"] = title
	c.HTML(status, tmpl, TemplateData(c, data))
}
